package middleware

import (
	"github.com/MuleAlemuB/project1-sub002/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger. Run it after RequestID;
// AuthMiddleware later adds the caller to the same logger.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		rid := contextutil.GetRequestID(ctx)

		reqLogger := logger.With(zap.String("request_id", rid))

		c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, reqLogger))
		c.Next()
	}
}
