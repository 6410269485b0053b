package leave

import (
	"go-attend/internal/middleware"
	"go-attend/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), h.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), h.GetByID)
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), h.Create)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "decide"), h.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "decide"), h.Reject)
		leaves.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave", "create"), h.Cancel)
	}
}
