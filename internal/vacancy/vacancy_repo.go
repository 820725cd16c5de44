package vacancy

import (
	"context"
	"database/sql"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=vacancy_repo.go -destination=mock/vacancy_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, v *Vacancy) error
	FindAll(ctx context.Context, onlyOpen bool) ([]Vacancy, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Vacancy, error)
	GetDepartmentName(ctx context.Context, departmentID uuid.UUID) (string, error)
	Update(ctx context.Context, v *Vacancy) error
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

func (r *repository) Create(ctx context.Context, v *Vacancy) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) FindAll(ctx context.Context, onlyOpen bool) ([]Vacancy, error) {
	db := r.db.WithContext(ctx).Order("created_at DESC")
	if onlyOpen {
		db = db.Where("status = ?", StatusOpen)
	}

	var items []Vacancy
	err := db.Find(&items).Error
	return items, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Vacancy, error) {
	var v Vacancy
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
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

func (r *repository) Update(ctx context.Context, v *Vacancy) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Vacancy{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
