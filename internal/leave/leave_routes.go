package leave

import (
	"github.com/MuleAlemuB/project1-sub002/internal/middleware"
	"github.com/MuleAlemuB/project1-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authn middleware.Authenticator,
	rbacService rbac.Service,
	redisClient *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(authn))
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead), handler.List)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead), handler.GetById)
		leaves.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionCreate),
			middleware.Idempotency(redisClient),
			handler.Create,
		)
		leaves.PUT("/:id/decision",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionDecide),
			handler.Decide,
		)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionDelete), handler.Delete)
	}
}
