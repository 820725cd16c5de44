package notification

import (
	"context"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"

	"github.com/google/uuid"
)

// Source is what a resolver reports about the document a notification
// references.
type Source struct {
	DepartmentID *uuid.UUID
	Metadata     map[string]any
}

// SourceResolver loads one kind of referenced document. Implementations
// return notificationerrors.ErrSourceNotFound for missing documents.
type SourceResolver interface {
	Resolve(ctx context.Context, id uuid.UUID) (Source, error)
}

type SourceResolverFunc func(ctx context.Context, id uuid.UUID) (Source, error)

func (f SourceResolverFunc) Resolve(ctx context.Context, id uuid.UUID) (Source, error) {
	return f(ctx, id)
}

// Resolvers is the dispatch table from reference kind to its resolver.
type Resolvers map[domain.RefKind]SourceResolver
