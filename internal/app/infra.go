package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-attend/internal/shared/connection"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectRetries = 5

// openDatabase membaca DB_* dari environment dan menunggu postgres siap.
func openDatabase() (*gorm.DB, error) {
	return connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		connectRetries,
	)
}

func requireKafkaBroker() (string, error) {
	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		return "", fmt.Errorf("KAFKA_BROKER is required")
	}
	return broker, nil
}

// waitForShutdown blok sampai SIGINT/SIGTERM.
func waitForShutdown(logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutdown signal received", zap.String("signal", sig.String()))
}
