package report

import (
	"github.com/MuleAlemuB/project1-sub002/internal/middleware"
	"github.com/MuleAlemuB/project1-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authn middleware.Authenticator, rbacService rbac.Service) {
	reports := r.Group("/reports")
	reports.Use(
		middleware.AuthMiddleware(authn),
		middleware.RBACAuthorize(rbacService, rbac.ResourceReport, rbac.ActionRead),
	)
	{
		reports.GET("/dashboard", handler.Dashboard)
		reports.GET("/leaves.xlsx", handler.ExportLeaves)
		reports.GET("/employees.xlsx", handler.ExportEmployees)
	}
}
