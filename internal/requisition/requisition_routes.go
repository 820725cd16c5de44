package requisition

import (
	"github.com/MuleAlemuB/project1-sub002/internal/domain"
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
	requisitions := r.Group("/requisitions")
	requisitions.Use(middleware.AuthMiddleware(authn))
	{
		requisitions.POST("",
			middleware.RequireRoles(domain.RoleDepartmentHead),
			middleware.RBACAuthorize(rbacService, rbac.ResourceRequisition, rbac.ActionCreate),
			handler.Create,
		)
		requisitions.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceRequisition, rbac.ActionRead), handler.List)
		requisitions.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceRequisition, rbac.ActionRead), handler.GetById)
		requisitions.PUT("/:id/decision",
			middleware.RBACAuthorize(rbacService, rbac.ResourceRequisition, rbac.ActionDecide),
			handler.Decide,
		)
		requisitions.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceRequisition, rbac.ActionDelete), handler.Delete)
	}
}
