package middleware

import (
	"context"
	"strings"

	autherrors "github.com/MuleAlemuB/project1-sub002/internal/auth/errors"
	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/contextutil"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextIdentity = "identity"
	ContextUserID   = "user_id"
	ContextRole     = "role"
)

// Authenticator verifies a bearer token and resolves the caller. Roles on
// the returned identity are already normalized.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

func AuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		tokenString = strings.TrimSpace(tokenString)

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, autherrors.ErrTokenNotFound)
			return
		}

		ctx := c.Request.Context()
		identity, err := authn.Authenticate(ctx, tokenString)
		if err != nil {
			abortWith(c, err)
			return
		}

		c.Set(ContextIdentity, identity)
		c.Set(ContextUserID, identity.ID.String())
		c.Set(ContextRole, identity.Role.String())

		reqLogger := contextutil.GetLogger(ctx, zap.L()).With(
			zap.String("user_id", identity.ID.String()),
			zap.String("role", identity.Role.String()),
		)
		ctx = contextutil.WithIdentity(ctx, identity)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles lets the request through only for the listed roles.
func RequireRoles(allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		if !identity.Role.In(allowed...) {
			abortWith(c, autherrors.ErrForbidden)
			return
		}

		c.Next()
	}
}

// IdentityFrom returns the identity stored by AuthMiddleware.
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	if v, ok := c.Get(ContextIdentity); ok {
		if id, ok := v.(domain.Identity); ok {
			return id, true
		}
	}
	return contextutil.GetIdentity(c.Request.Context())
}

func abortWith(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}
