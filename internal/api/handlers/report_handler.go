// internal/api/handlers/report_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/magazyn-app/backend-go/internal/service"
	"github.com/rs/zerolog/log"
)

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GetReport returns the replenishment report as of now, or as of an explicit
// "date" query parameter (YYYY-MM-DD).
func (h *ReportHandler) GetReport(c *gin.Context) {
	now := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		now = parsed
	}

	rows, err := h.reports.BuildReport(c.Request.Context(), now)
	if err != nil {
		log.Error().Err(err).Msg("failed to build report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generated_at": now,
		"count":        len(rows),
		"rows":         rows,
	})
}
