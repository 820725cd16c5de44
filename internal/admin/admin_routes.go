// Package admin mounts the /admin aliases. Each route delegates to the
// handler that owns the operation.
package admin

import (
	"github.com/MuleAlemuB/project1-sub002/internal/auth"
	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/middleware"
	"github.com/MuleAlemuB/project1-sub002/internal/rbac"
	"github.com/MuleAlemuB/project1-sub002/internal/report"
	"github.com/MuleAlemuB/project1-sub002/internal/requisition"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Report      *report.Handler
	Requisition *requisition.Handler
	Auth        *auth.Handler
}

func RegisterRoutes(r *gin.RouterGroup, h Handlers, authn middleware.Authenticator, rbacService rbac.Service) {
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(authn),
		middleware.RequireRoles(domain.RoleAdmin),
	)
	{
		admin.GET("/dashboard",
			middleware.RBACAuthorize(rbacService, rbac.ResourceReport, rbac.ActionRead),
			h.Report.Dashboard,
		)
		admin.PUT("/requisitions/:id/decision",
			middleware.RBACAuthorize(rbacService, rbac.ResourceRequisition, rbac.ActionDecide),
			h.Requisition.Decide,
		)
		admin.GET("/users", middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionRead), h.Auth.ListUsers)
		admin.POST("/users", middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionCreate), h.Auth.Register)
	}
}
