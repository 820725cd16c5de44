package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope narrows a listing. A zero Scope returns every leave; when both
// fields are set a leave matching either is returned.
type Scope struct {
	RequesterID  *uuid.UUID
	DepartmentID *uuid.UUID
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context, scope Scope) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasOverlappingPeriod(ctx context.Context, requesterID uuid.UUID, startDate, endDate time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, scope Scope) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).Order("created_at DESC")

	switch {
	case scope.RequesterID != nil && scope.DepartmentID != nil:
		db = db.Where("requester_id = ? OR department_id = ?", *scope.RequesterID, *scope.DepartmentID)
	case scope.RequesterID != nil:
		db = db.Where("requester_id = ?", *scope.RequesterID)
	case scope.DepartmentID != nil:
		db = db.Where("department_id = ?", *scope.DepartmentID)
	}

	var leaves []LeaveRequest
	err := db.Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&LeaveRequest{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, requesterID uuid.UUID, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("requester_id = ?", requesterID).
		Where("status <> ?", StatusRejected).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}
