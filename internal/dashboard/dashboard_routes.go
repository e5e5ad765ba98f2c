package dashboard

import (
	"go-trainreg/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(middleware.RoleAdmin))
	{
		dashboard.GET("", handler.GetStats)
	}
}
