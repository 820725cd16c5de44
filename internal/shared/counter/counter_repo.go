package counter

import (
	"context"
	"database/sql"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/connection"

	"gorm.io/gorm"
)

const TypeEmployeeNumber = "employee_number"

// Counter is a named monotonically increasing sequence.
type Counter struct {
	CounterType string `gorm:"primaryKey;size:64"`
	LastValue   int64  `gorm:"not null;default:0"`
}

func (Counter) TableName() string { return "counters" }

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, counterType string) (int64, error)
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

func (r *repository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	var nextValue int64

	// atomic upsert so concurrent callers never share a value
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (counter_type, last_value)
		VALUES (?, 1)
		ON CONFLICT (counter_type) DO UPDATE
		SET last_value = counters.last_value + 1
		RETURNING last_value
	`, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
