package team

import (
	"go-attend/internal/middleware"
	"go-attend/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	teams := r.Group("/teams")
	teams.Use(middleware.AuthMiddleware())
	{
		teams.GET("", middleware.RBACAuthorize(rbacService, "team", "read"), h.GetAll)
		teams.GET("/:id", middleware.RBACAuthorize(rbacService, "team", "read"), h.GetByID)
		teams.POST("", middleware.RBACAuthorize(rbacService, "team", "manage"), h.Create)
		teams.PUT("/:id", middleware.RBACAuthorize(rbacService, "team", "manage"), h.Update)
		teams.DELETE("/:id", middleware.RBACAuthorize(rbacService, "team", "manage"), h.Delete)
	}
}
