package department

import (
	"context"
	"database/sql"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context) ([]Department, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Department, error)
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountEmployees(ctx context.Context, id uuid.UUID) (int64, error)
	SetEmployeeCount(ctx context.Context, id uuid.UUID, count int64) error
	PropagateName(ctx context.Context, id uuid.UUID, name string) error
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

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).First(&dept, "id = ?", id).Error
	return &dept, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Department{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountEmployees(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("department_id = ?", id).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *repository) SetEmployeeCount(ctx context.Context, id uuid.UUID, count int64) error {
	return r.db.WithContext(ctx).
		Model(&Department{}).
		Where("id = ?", id).
		Update("employee_count", count).Error
}

func (r *repository) PropagateName(ctx context.Context, id uuid.UUID, name string) error {
	for _, table := range denormalizedTables {
		err := r.db.WithContext(ctx).
			Table(table).
			Where("department_id = ?", id).
			Update("department_name", name).Error
		if err != nil {
			return err
		}
	}
	return nil
}
