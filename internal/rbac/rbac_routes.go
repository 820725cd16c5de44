package rbac

import (
	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authn middleware.Authenticator) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware(authn))
	{
		group.GET("/permissions", handler.MyPermissions)
		group.POST("/enforce", middleware.RequireRoles(domain.RoleAdmin), handler.Enforce)
	}
}
