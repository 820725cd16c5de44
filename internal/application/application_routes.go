package application

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
	applications := r.Group("/applications")
	{
		applications.POST("",
			middleware.RateLimitByIP(0.2, 3),
			middleware.Idempotency(redisClient),
			handler.Apply,
		)

		admin := applications.Group("")
		admin.Use(middleware.AuthMiddleware(authn))
		admin.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceApplication, rbac.ActionRead), handler.List)
		admin.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceApplication, rbac.ActionRead), handler.GetById)
		admin.PUT("/:id/decision", middleware.RBACAuthorize(rbacService, rbac.ResourceApplication, rbac.ActionDecide), handler.Decide)
		admin.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceApplication, rbac.ActionDelete), handler.Delete)
	}
}
