package geofence

import (
	"go-attend/internal/middleware"
	"go-attend/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	locations := r.Group("/locations")
	locations.Use(middleware.AuthMiddleware())
	{
		locations.GET("", middleware.RBACAuthorize(rbacService, "location", "read"), h.GetAll)
		locations.GET("/:id", middleware.RBACAuthorize(rbacService, "location", "read"), h.GetByID)
		locations.POST("", middleware.RBACAuthorize(rbacService, "location", "manage"), h.Create)
		locations.PUT("/:id", middleware.RBACAuthorize(rbacService, "location", "manage"), h.Update)
		locations.DELETE("/:id", middleware.RBACAuthorize(rbacService, "location", "manage"), h.Deactivate)
	}
}
