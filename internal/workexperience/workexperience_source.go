package workexperience

import (
	"context"
	"errors"

	"github.com/MuleAlemuB/project1-sub002/internal/notification"
	notificationerrors "github.com/MuleAlemuB/project1-sub002/internal/notification/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func NewSourceResolver(repo Repository) notification.SourceResolver {
	return notification.SourceResolverFunc(func(ctx context.Context, id uuid.UUID) (notification.Source, error) {
		w, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notification.Source{}, notificationerrors.ErrSourceNotFound
			}
			return notification.Source{}, err
		}
		return notification.Source{DepartmentID: w.DepartmentID, Metadata: sourceMetadata(*w)}, nil
	})
}
