package app

import (
	"database/sql"

	"go-attend/internal/attendance"
	"go-attend/internal/auth"
	"go-attend/internal/geofence"
	"go-attend/internal/leave"
	"go-attend/internal/notification"
	"go-attend/internal/rbac"
	"go-attend/internal/rbac/infra"
	"go-attend/internal/shared/counter"
	"go-attend/internal/team"
	"go-attend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	policy attendance.Policy,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	geofenceRepo := geofence.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	teamRepo := team.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	notifier := notification.NewOutboxDispatcher(db)
	authService := auth.NewService(userRepo)
	geofenceService := geofence.NewService(geofenceRepo, rdb)
	leaveService := leave.NewService(db, leaveRepo, notifier)
	notificationService := notification.NewService(notificationRepo)
	userService := user.NewService(db, userRepo, counterRepo)
	teamService := team.NewService(teamRepo, userService)
	attendanceService := attendance.NewService(
		db,
		attendanceRepo,
		geofenceService,
		policy,
		notifier,
		userService,
	)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandlerWithRedis(attendanceService, rdb)
	authHandler := auth.NewHandler(authService)
	geofenceHandler := geofence.NewHandler(geofenceService)
	leaveHandler := leave.NewHandler(leaveService)
	notificationHandler := notification.NewHandler(notificationService)
	teamHandler := team.NewHandler(teamService)
	userHandler := user.NewHandler(userService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rdb)
		geofence.RegisterRoutes(api, geofenceHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		team.RegisterRoutes(api, teamHandler, rbacService)
		user.RegisterRoutes(api, userHandler, rbacService)
	}

	return nil
}
