package notification

import (
	"github.com/MuleAlemuB/project1-sub002/internal/middleware"
	"github.com/MuleAlemuB/project1-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authn middleware.Authenticator,
	rbacService rbac.Service,
) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(authn))
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionRead), handler.List)
		notifications.GET("/unseen-count", middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionRead), handler.UnseenCount)
		notifications.PUT("/seen", middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionUpdate), handler.MarkAllSeen)
		notifications.PUT("/:id/seen", middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionUpdate), handler.MarkSeen)
		notifications.DELETE("/read", middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionDelete), handler.ClearRead)
		notifications.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionDelete), handler.Delete)
	}
}
