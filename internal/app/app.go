package app

import (
	"context"
	"os"

	"go-trainreg/internal/database"
	"go-trainreg/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, runs migrations and mounts every
// module on the router.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	migrator, err := database.NewMigrator(sqlDB)
	if err != nil {
		return err
	}
	if err := migrator.Run(context.Background()); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		// Cache bersifat opsional, aplikasi tetap jalan tanpa Redis
		logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
		redisClient = nil
	} else {
		logger.Info("redis connection established")
	}

	// 2. Register Modules & Routes
	return registerModules(router, sqlDB, gormDB, redisClient)
}
