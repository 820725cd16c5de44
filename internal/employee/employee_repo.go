package employee

import (
	"context"
	"database/sql"
	"strings"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListFilter struct {
	DepartmentID *uuid.UUID
	Query        string
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, filter ListFilter) ([]Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	GetDepartmentName(ctx context.Context, departmentID uuid.UUID) (string, error)
	Update(ctx context.Context, empl *Employee) error
	UpdatePhoto(ctx context.Context, id uuid.UUID, path string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Employee, error) {
	var empls []Employee
	q := r.db.WithContext(ctx).Order("first_name ASC, last_name ASC")
	if filter.DepartmentID != nil {
		q = q.Where("department_id = ?", *filter.DepartmentID)
	}
	if term := strings.TrimSpace(filter.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(first_name || ' ' || last_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	err := q.Find(&empls).Error
	return empls, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Select("id", "first_name", "last_name", "department_name").
		Where("status = ?", StatusActive).
		Order("first_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&empl).Error
	return &empl, err
}

func (r *repository) GetDepartmentName(ctx context.Context, departmentID uuid.UUID) (string, error) {
	var name string
	err := r.db.WithContext(ctx).
		Table("departments").
		Select("name").
		Where("id = ?", departmentID).
		Where("deleted_at IS NULL").
		Scan(&name).Error
	return name, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) UpdatePhoto(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Update("photo_path", path).Error
}

func (r *repository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
