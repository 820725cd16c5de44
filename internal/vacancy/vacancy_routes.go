package vacancy

import (
	"github.com/MuleAlemuB/project1-sub002/internal/middleware"
	"github.com/MuleAlemuB/project1-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes exposes the public job board next to the admin-only
// management routes.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authn middleware.Authenticator,
	rbacService rbac.Service,
) {
	vacancies := r.Group("/vacancies")
	{
		vacancies.GET("", middleware.RateLimitByIP(5, 20), handler.ListOpen)
		vacancies.GET("/all",
			middleware.AuthMiddleware(authn),
			middleware.RBACAuthorize(rbacService, rbac.ResourceVacancy, rbac.ActionUpdate),
			handler.ListAll,
		)
		vacancies.GET("/:id", middleware.RateLimitByIP(5, 20), handler.GetById)

		admin := vacancies.Group("")
		admin.Use(middleware.AuthMiddleware(authn))
		admin.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceVacancy, rbac.ActionCreate), handler.Create)
		admin.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceVacancy, rbac.ActionUpdate), handler.Update)
		admin.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceVacancy, rbac.ActionDelete), handler.Delete)
	}
}
