package workexperience

import (
	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/middleware"
	"github.com/MuleAlemuB/project1-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authn middleware.Authenticator, rbacService rbac.Service) {
	requests := r.Group("/work-experience")
	requests.Use(middleware.AuthMiddleware(authn))
	{
		requests.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceWorkExperience, rbac.ActionRead), handler.List)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceWorkExperience, rbac.ActionRead), handler.GetById)
		requests.GET("/:id/letter", middleware.RBACAuthorize(rbacService, rbac.ResourceWorkExperience, rbac.ActionRead), handler.Download)
		requests.POST("",
			middleware.RequireRoles(domain.RoleEmployee, domain.RoleDepartmentHead),
			middleware.RBACAuthorize(rbacService, rbac.ResourceWorkExperience, rbac.ActionCreate),
			handler.Create,
		)
		requests.PUT("/:id/decision", middleware.RBACAuthorize(rbacService, rbac.ResourceWorkExperience, rbac.ActionDecide), handler.Decide)
		requests.POST("/:id/generate", middleware.RBACAuthorize(rbacService, rbac.ResourceWorkExperience, rbac.ActionGenerate), handler.Generate)
		requests.POST("/:id/upload", middleware.RBACAuthorize(rbacService, rbac.ResourceWorkExperience, rbac.ActionGenerate), handler.Upload)
	}
}
