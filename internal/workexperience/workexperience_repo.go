package workexperience

import (
	"context"
	"database/sql"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/connection"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=workexperience_repo.go -destination=mock/workexperience_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, w *WorkExperienceRequest) error
	FindAll(ctx context.Context, employeeID *uuid.UUID) ([]WorkExperienceRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*WorkExperienceRequest, error)
	Update(ctx context.Context, w *WorkExperienceRequest) error
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

func (r *repository) Create(ctx context.Context, w *WorkExperienceRequest) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *repository) FindAll(ctx context.Context, employeeID *uuid.UUID) ([]WorkExperienceRequest, error) {
	db := r.db.WithContext(ctx).Scopes(scope.Employee(employeeID)).Order("created_at DESC")

	var items []WorkExperienceRequest
	err := db.Find(&items).Error
	return items, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*WorkExperienceRequest, error) {
	var w WorkExperienceRequest
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) Update(ctx context.Context, w *WorkExperienceRequest) error {
	return r.db.WithContext(ctx).Save(w).Error
}
