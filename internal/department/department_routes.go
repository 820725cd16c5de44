package department

import (
	"github.com/MuleAlemuB/project1-sub002/internal/middleware"
	"github.com/MuleAlemuB/project1-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	authn middleware.Authenticator,
	rbacService rbac.Service,
) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware(authn))
	{
		departments.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceDepartment, rbac.ActionRead), h.GetAll)
		departments.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceDepartment, rbac.ActionCreate), h.Create)
		departments.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceDepartment, rbac.ActionRead), h.GetById)
		departments.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceDepartment, rbac.ActionUpdate), h.Update)
		departments.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceDepartment, rbac.ActionDelete), h.Delete)
	}
}
