package export

import (
	"encoding/csv"
	"fmt"
	"time"

	"go-trainreg/internal/shared/apperror"
	"go-trainreg/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var csvHeader = []string{"ID", "Full Name", "Email", "Phone", "Address", "Training", "Status", "Registered At"}

type Handler struct {
	repo   Repository
	logger *zap.Logger
}

func NewHandler(repo Repository, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("export.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("export.handler")
	}
	return &Handler{repo: repo, logger: l}
}

// ExportApplicants streams the full applicant list as a CSV download.
// Rows are flushed as they are written so the response starts immediately.
func (h *Handler) ExportApplicants(c *gin.Context) {
	h.logger.Debug("http export applicants")

	filename := fmt.Sprintf("applicants-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	w := csv.NewWriter(c.Writer)
	caser := cases.Title(language.English)

	if err := w.Write(csvHeader); err != nil {
		h.logger.Error("export applicants write header failed", zap.Error(err))
		return
	}
	w.Flush()

	count := 0
	err := h.repo.StreamApplicants(c.Request.Context(), func(row ApplicantRow) error {
		record := []string{
			row.ID,
			row.FullName,
			row.Email,
			row.Phone,
			row.Address,
			row.TrainingTitle,
			caser.String(row.Status),
			row.RegisteredAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return err
		}
		w.Flush()
		count++
		return w.Error()
	})
	if err != nil {
		h.logger.Error("export applicants failed", zap.Error(err))
		if count == 0 && !c.Writer.Written() {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		}
		return
	}

	w.Flush()
	h.logger.Info("export applicants success", zap.Int("rows", count))
}
