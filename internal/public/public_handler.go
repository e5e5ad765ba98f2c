package public

import (
	"net/http"
	"strconv"
	"time"

	"go-trainreg/internal/shared/apperror"
	"go-trainreg/internal/shared/response"
	"go-trainreg/internal/training"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// publicPageSize matches the card grid on the public catalog page.
const publicPageSize = 12

type Handler struct {
	trainings training.Service
	logger    *zap.Logger
}

func NewHandler(trainings training.Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("public.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("public.handler")
	}
	return &Handler{trainings: trainings, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("public request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Home serves the landing page payload with a short list of trainings
// still open for registration.
func (h *Handler) Home(c *gin.Context) {
	h.logger.Debug("http public home")

	resp, err := h.trainings.GetOpenHighlights(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"trainings": resp}, nil)
}

// ListTrainings serves the public catalog of upcoming active trainings.
func (h *Handler) ListTrainings(c *gin.Context) {
	h.logger.Debug("http public list trainings")

	resp, err := h.trainings.GetUpcoming(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	total := int64(len(resp))
	start := (page - 1) * publicPageSize
	end := start + publicPageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, publicPageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

// TrainingDetail serves the public detail page. Inactive and already
// started trainings are treated as missing.
func (h *Handler) TrainingDetail(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http public training detail", zap.String("training_id", id))

	resp, err := h.trainings.GetPublicByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// RegistrationForm serves the list of trainings selectable on the
// registration form.
func (h *Handler) RegistrationForm(c *gin.Context) {
	h.logger.Debug("http public registration form")

	resp, err := h.trainings.GetOpenForRegistration(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"trainings": resp}, nil)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, nil)
}
