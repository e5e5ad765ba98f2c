package public

import (
	"go-trainreg/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the visitor-facing pages at the root of the router.
func RegisterRoutes(r *gin.Engine, handler *Handler) {
	root := r.Group("/", middleware.RateLimitByIP(5, 10))
	{
		root.GET("", handler.Home)
		root.GET("/trainings", handler.ListTrainings)
		root.GET("/training/:id", handler.TrainingDetail)
		root.GET("/register", handler.RegistrationForm)
	}

	r.GET("/health-check", handler.HealthCheck)
}
