package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/middleware"
	notificationerrors "github.com/MuleAlemuB/project1-sub002/internal/notification/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  json.RawMessage `json:"meta"`
	Error *apiError       `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type fakeService struct {
	Service
	listFn     func(ctx context.Context, caller domain.Identity) ([]NotificationResponse, error)
	markSeenFn func(ctx context.Context, caller domain.Identity, id string) (NotificationResponse, error)
}

func (f *fakeService) List(ctx context.Context, caller domain.Identity) ([]NotificationResponse, error) {
	return f.listFn(ctx, caller)
}

func (f *fakeService) MarkSeen(ctx context.Context, caller domain.Identity, id string) (NotificationResponse, error) {
	return f.markSeenFn(ctx, caller, id)
}

func newTestContext(method, target string, caller *domain.Identity) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	if caller != nil {
		c.Set(middleware.ContextIdentity, *caller)
	}
	return c, w
}

func TestHandler_List_Paginates(t *testing.T) {
	caller := domain.Identity{ID: uuid.New(), Role: domain.RoleAdmin}
	handler := NewHandler(&fakeService{
		listFn: func(ctx context.Context, got domain.Identity) ([]NotificationResponse, error) {
			assert.Equal(t, caller, got)
			return []NotificationResponse{{ID: "1"}, {ID: "2"}, {ID: "3"}}, nil
		},
	})

	c, w := newTestContext(http.MethodGet, "/notifications?page=2&page_size=2", &caller)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))

	var items []NotificationResponse
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "3", items[0].ID)
	assert.Contains(t, string(env.Meta), `"total":3`)
}

func TestHandler_List_Unauthenticated(t *testing.T) {
	handler := NewHandler(&fakeService{})
	c, w := newTestContext(http.MethodGet, "/notifications", nil)
	handler.List(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_MarkSeen_Errors(t *testing.T) {
	caller := domain.Identity{Role: domain.RoleEmployee}

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"not found", notificationerrors.ErrNotificationNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"forbidden", notificationerrors.ErrNotificationForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"bad id", notificationerrors.ErrInvalidNotificationID, http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(&fakeService{
				markSeenFn: func(ctx context.Context, caller domain.Identity, id string) (NotificationResponse, error) {
					return NotificationResponse{}, tt.err
				},
			})

			c, w := newTestContext(http.MethodPut, "/notifications/x/seen", &caller)
			c.Params = gin.Params{{Key: "id", Value: "x"}}
			handler.MarkSeen(c)

			assert.Equal(t, tt.wantCode, w.Code)
			var env apiEnvelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, tt.wantErr, env.Error.Code)
		})
	}
}
