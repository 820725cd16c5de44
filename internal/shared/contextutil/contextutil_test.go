package contextutil_test

import (
	"context"
	"testing"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIdentityRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, ok := contextutil.GetIdentity(ctx)
	assert.False(t, ok)
	assert.Empty(t, contextutil.GetUserID(ctx))

	id := domain.Identity{ID: uuid.New(), Role: domain.RoleDepartmentHead}
	ctx = contextutil.WithIdentity(ctx, id)
	ctx = contextutil.WithRequestID(ctx, "rid-1")

	got, ok := contextutil.GetIdentity(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	md := contextutil.ExtractMetadata(ctx)
	assert.Equal(t, "rid-1", md.RequestID)
	assert.Equal(t, id.ID.String(), md.UserID)
	assert.Equal(t, "departmenthead", md.Role)
}

func TestGetLogger_Fallbacks(t *testing.T) {
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))

	def := zap.NewExample()
	assert.Same(t, def, contextutil.GetLogger(context.Background(), def))

	scoped := zap.NewNop()
	ctx := contextutil.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, contextutil.GetLogger(ctx, def))
}
