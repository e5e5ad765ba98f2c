package applicant

import (
	"go-trainreg/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RegisterPublicRoutes mounts the unauthenticated registration and status
// lookup surface at the root. Both are rate limited per IP; the registration
// POST additionally honors Idempotency-Key.
func RegisterPublicRoutes(r *gin.Engine, handler *Handler, rdb *redis.Client) {
	limited := r.Group("/")
	limited.Use(middleware.RateLimitByIP(rate.Limit(5), 10))
	{
		limited.GET("/status", handler.Lookup)
		limited.POST("/status", handler.Lookup)
		limited.POST("/register", middleware.Idempotency(rdb), handler.Register)
	}
}

// RegisterRoutes mounts the admin CRUD surface.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	applicants := r.Group("/applicants")
	applicants.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(middleware.RoleAdmin))
	{
		applicants.GET("", handler.GetAll)
		applicants.GET("/:id", handler.GetById)
		applicants.PUT("/:id", handler.Update)
		applicants.DELETE("/:id", handler.Delete)
	}
}
