package leave

import (
	"context"
	"errors"

	"github.com/MuleAlemuB/project1-sub002/internal/notification"
	notificationerrors "github.com/MuleAlemuB/project1-sub002/internal/notification/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewSourceResolver lets notifications referencing a leave be enriched and
// department-filtered from the current leave document.
func NewSourceResolver(repo Repository) notification.SourceResolver {
	return notification.SourceResolverFunc(func(ctx context.Context, id uuid.UUID) (notification.Source, error) {
		l, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notification.Source{}, notificationerrors.ErrSourceNotFound
			}
			return notification.Source{}, err
		}
		return notification.Source{
			DepartmentID: l.DepartmentID,
			Metadata:     sourceMetadata(*l),
		}, nil
	})
}
