package application

import (
	"context"
	"errors"

	"github.com/MuleAlemuB/project1-sub002/internal/notification"
	notificationerrors "github.com/MuleAlemuB/project1-sub002/internal/notification/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewSourceResolver enriches application notifications with the current
// applicant contact and status. Applications carry no department.
func NewSourceResolver(repo Repository) notification.SourceResolver {
	return notification.SourceResolverFunc(func(ctx context.Context, id uuid.UUID) (notification.Source, error) {
		a, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notification.Source{}, notificationerrors.ErrSourceNotFound
			}
			return notification.Source{}, err
		}
		return notification.Source{Metadata: sourceMetadata(*a)}, nil
	})
}
