package notification

import (
	"go-attend/internal/middleware"
	"go-attend/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, "notification", "read"), h.GetAll)
		notifications.POST("/:id/read", middleware.RBACAuthorize(rbacService, "notification", "read"), h.MarkRead)
		notifications.POST("/read-all", middleware.RBACAuthorize(rbacService, "notification", "read"), h.MarkAllRead)
	}
}
