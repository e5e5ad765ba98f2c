package app

import (
	"database/sql"

	"go-trainreg/internal/applicant"
	"go-trainreg/internal/auth"
	"go-trainreg/internal/dashboard"
	"go-trainreg/internal/export"
	"go-trainreg/internal/messaging/kafka"
	"go-trainreg/internal/public"
	"go-trainreg/internal/shared/counter"
	"go-trainreg/internal/training"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	applicantRepo := applicant.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)
	exportRepo := export.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	trainingRepo := training.NewRepository(gormDB)

	// --- Services ---
	applicantService := applicant.NewServiceWithOutbox(db, applicantRepo, trainingRepo, counterRepo, outboxRepo, rdb)
	authService := auth.NewService(authRepo)
	dashboardService := dashboard.NewService(dashboardRepo)
	trainingService := training.NewService(trainingRepo, rdb)

	// --- Handlers ---
	applicantHandler := applicant.NewHandlerWithRedis(applicantService, rdb)
	authHandler := auth.NewHandler(authService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	exportHandler := export.NewHandler(exportRepo)
	publicHandler := public.NewHandler(trainingService)
	trainingHandler := training.NewHandler(trainingService)

	// --- Routes Registration ---
	// Halaman publik di root, admin API di bawah /api/v1
	public.RegisterRoutes(router, publicHandler)
	applicant.RegisterPublicRoutes(router, applicantHandler, rdb)

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		training.RegisterRoutes(api, trainingHandler)
		applicant.RegisterRoutes(api, applicantHandler)
		dashboard.RegisterRoutes(api, dashboardHandler)
		export.RegisterRoutes(api, exportHandler)
	}

	return nil
}
