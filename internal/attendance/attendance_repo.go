package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/connection"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Query selects attendance rows. Nil fields do not filter.
type Query struct {
	EmployeeID *uuid.UUID
	From       *time.Time
	To         *time.Time
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*Attendance, error)
	FindAll(ctx context.Context, q Query) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format(dateLayout)).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAll(ctx context.Context, q Query) ([]Attendance, error) {
	db := r.db.WithContext(ctx).Scopes(scope.Employee(q.EmployeeID))
	if q.From != nil {
		db = db.Where("attendance_date >= ?", q.From.Format(dateLayout))
	}
	if q.To != nil {
		db = db.Where("attendance_date <= ?", q.To.Format(dateLayout))
	}
	db = db.Order("attendance_date DESC, clock_in DESC")

	var rows []Attendance
	err := db.Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}
