package application

import (
	"context"
	"database/sql"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/connection"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=application_repo.go -destination=mock/application_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Application) error
	FindAll(ctx context.Context, vacancyID *uuid.UUID) ([]Application, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Application, error)
	Update(ctx context.Context, a *Application) error
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

func (r *repository) Create(ctx context.Context, a *Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAll(ctx context.Context, vacancyID *uuid.UUID) ([]Application, error) {
	db := r.db.WithContext(ctx).Scopes(scope.Equal("vacancy_id", vacancyID)).Order("created_at DESC")

	var items []Application
	err := db.Find(&items).Error
	return items, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	var a Application
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Update(ctx context.Context, a *Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Application{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
