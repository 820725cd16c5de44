package auth

import (
	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authn middleware.Authenticator) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(authn), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.PUT("/password",
			middleware.AuthMiddleware(authn),
			middleware.RateLimitByUser(0.2, 3),
			handler.ChangePassword,
		)
		auth.POST("/register",
			middleware.AuthMiddleware(authn),
			middleware.RequireRoles(domain.RoleAdmin),
			handler.Register,
		)
	}
}
