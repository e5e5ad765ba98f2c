package export

import (
	"go-trainreg/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/export-applicants",
		middleware.AuthMiddleware(),
		middleware.RoleMiddleware(middleware.RoleAdmin),
		handler.ExportApplicants,
	)
}
