package app

import (
	"os"

	"go-attend/internal/attendance"
	"go-attend/internal/middleware"
	"go-attend/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp menyiapkan koneksi infrastruktur, memuat aturan absensi, dan
// mendaftarkan seluruh modul beserta route-nya ke router.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	router.Use(middleware.RequestID())

	gormDB, err := openDatabase()
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), connectRetries)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	policy := attendance.PolicyFromEnv()
	logger.Info("attendance policy loaded",
		zap.Int("office_start_hour", policy.OfficeStartHour),
		zap.Int("late_threshold_minutes", policy.LateThresholdMin),
		zap.Int("half_day_hour", policy.HalfDayHour),
		zap.Bool("skip_geofence", policy.SkipGeofence),
	)

	return registerModules(router, sqlDB, gormDB, redisClient, policy)
}
