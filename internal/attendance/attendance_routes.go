package attendance

import (
	"go-attend/internal/middleware"
	"go-attend/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	attendances := r.Group("/attendance")
	attendances.Use(middleware.AuthMiddleware())
	attendances.Use(middleware.ExtractUserID())
	attendances.Use(middleware.ContextLogger(zap.L()))
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendances.GET("/today", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetToday)
		attendances.POST("/check-in", middleware.RBACAuthorize(rbacService, "attendance", "create"), middleware.Idempotency(rdb), h.CheckIn)
		attendances.POST("/check-out", middleware.RBACAuthorize(rbacService, "attendance", "create"), middleware.Idempotency(rdb), h.CheckOut)
		attendances.POST("/break/start", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.StartBreak)
		attendances.POST("/break/end", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.EndBreak)
	}
}
