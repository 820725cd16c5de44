package attendance

import (
	"github.com/MuleAlemuB/project1-sub002/internal/middleware"
	"github.com/MuleAlemuB/project1-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn middleware.Authenticator, rbacService rbac.Service) {
	attendances := r.Group("/attendance")
	attendances.Use(middleware.AuthMiddleware(authn))
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead), h.GetAll)
		attendances.POST("/clock-in", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate), h.ClockIn)
		attendances.POST("/clock-out", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate), h.ClockOut)
	}
}
