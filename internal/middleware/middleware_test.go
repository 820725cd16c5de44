package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	autherrors "github.com/MuleAlemuB/project1-sub002/internal/auth/errors"
	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

type fakeAuthenticator struct {
	authenticateFn func(ctx context.Context, token string) (domain.Identity, error)
}

func (f *fakeAuthenticator) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	return f.authenticateFn(ctx, token)
}

type fakeRBAC struct {
	enforceFn func(req domain.EnforceRequest) (bool, error)
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	return f.enforceFn(req)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", handlers...)
	return r
}

func okHandler(c *gin.Context) {
	id, _ := contextutil.GetIdentity(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": id.Role})
}

func TestAuthMiddleware(t *testing.T) {
	head := domain.Identity{ID: uuid.New(), Role: domain.RoleDepartmentHead, Email: "head@example.com"}
	authn := &fakeAuthenticator{
		authenticateFn: func(ctx context.Context, token string) (domain.Identity, error) {
			switch token {
			case "good":
				return head, nil
			case "expired":
				return domain.Identity{}, autherrors.ErrTokenExpired
			default:
				return domain.Identity{}, autherrors.ErrInvalidToken
			}
		},
	}
	router := newRouter(AuthMiddleware(authn), okHandler)

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", decodeEnvelope(t, w).Error.Code)
	})

	t.Run("bearer token resolves identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "departmenthead")
	})

	t.Run("cookie token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "good"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer expired")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, autherrors.ErrTokenExpired.Message, decodeEnvelope(t, w).Error.Message)
	})
}

func withIdentity(id domain.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextIdentity, id)
		c.Request = c.Request.WithContext(contextutil.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name string
		role domain.Role
		want int
	}{
		{"admin allowed", domain.RoleAdmin, http.StatusOK},
		{"head allowed", domain.RoleDepartmentHead, http.StatusOK},
		{"employee forbidden", domain.RoleEmployee, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(
				withIdentity(domain.Identity{ID: uuid.New(), Role: tt.role}),
				RequireRoles(domain.RoleAdmin, domain.RoleDepartmentHead),
				okHandler,
			)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}

	t.Run("no identity", func(t *testing.T) {
		router := newRouter(RequireRoles(domain.RoleAdmin), okHandler)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRBACAuthorize(t *testing.T) {
	var got domain.EnforceRequest
	rbac := &fakeRBAC{
		enforceFn: func(req domain.EnforceRequest) (bool, error) {
			got = req
			if req.Role == "broken" {
				return false, errors.New("enforcer down")
			}
			return req.Role == domain.RoleAdmin, nil
		},
	}

	t.Run("allowed", func(t *testing.T) {
		router := newRouter(withIdentity(domain.Identity{Role: domain.RoleAdmin}), RBACAuthorize(rbac, "report", "read"), okHandler)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.EnforceRequest{Role: domain.RoleAdmin, Resource: "report", Action: "read"}, got)
	})

	t.Run("denied", func(t *testing.T) {
		router := newRouter(withIdentity(domain.Identity{Role: domain.RoleEmployee}), RBACAuthorize(rbac, "report", "read"), okHandler)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", decodeEnvelope(t, w).Error.Code)
	})

	t.Run("enforcer error", func(t *testing.T) {
		router := newRouter(withIdentity(domain.Identity{Role: "broken"}), RBACAuthorize(rbac, "report", "read"), okHandler)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRequestIDAndContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), ContextLogger(zapNop()))

	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = contextutil.GetRequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "rid-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "rid-123", seen)
	assert.Equal(t, "rid-123", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 65))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err, "oversized id is replaced")
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitByIP(0, 1))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
