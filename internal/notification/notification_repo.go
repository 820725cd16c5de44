package notification

import (
	"context"
	"time"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	FindByRecipientRole(ctx context.Context, role domain.Role) ([]Notification, error)
	MarkSeen(ctx context.Context, ids []uuid.UUID, at time.Time) (int64, error)
	Delete(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	return &n, err
}

func (r *repository) FindByRecipientRole(ctx context.Context, role domain.Role) ([]Notification, error) {
	var items []Notification
	err := r.db.WithContext(ctx).
		Where("recipient_role = ?", role).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *repository) MarkSeen(ctx context.Context, ids []uuid.UUID, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id IN ?", ids).
		Where("seen = ?", false).
		Updates(map[string]any{"seen": true, "seen_at": at})
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&Notification{})
	return res.RowsAffected, res.Error
}
