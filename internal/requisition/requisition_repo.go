package requisition

import (
	"context"
	"database/sql"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/connection"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=requisition_repo.go -destination=mock/requisition_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Requisition) error
	FindAll(ctx context.Context, departmentID *uuid.UUID) ([]Requisition, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Requisition, error)
	Update(ctx context.Context, r *Requisition) error
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

func (r *repository) Create(ctx context.Context, req *Requisition) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// FindAll lists every requisition, or only one department's when
// departmentID is set.
func (r *repository) FindAll(ctx context.Context, departmentID *uuid.UUID) ([]Requisition, error) {
	db := r.db.WithContext(ctx).Scopes(scope.Department(departmentID)).Order("created_at DESC")

	var items []Requisition
	err := db.Find(&items).Error
	return items, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Requisition, error) {
	var req Requisition
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) Update(ctx context.Context, req *Requisition) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Requisition{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
