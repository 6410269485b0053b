package user

import (
	"go-attend/internal/middleware"
	"go-attend/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", middleware.RBACAuthorize(rbacService, "user", "read"), h.GetAll)
		users.GET("/:id", middleware.RBACAuthorize(rbacService, "user", "read"), h.GetByID)
		users.POST("", middleware.RBACAuthorize(rbacService, "user", "manage"), h.Create)
		users.PUT("/:id", middleware.RBACAuthorize(rbacService, "user", "manage"), h.Update)
		users.DELETE("/:id", middleware.RBACAuthorize(rbacService, "user", "manage"), h.Deactivate)
	}
}
