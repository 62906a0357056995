// internal/api/handlers/upload_handler.go
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/magazyn-app/backend-go/internal/domain"
	"github.com/magazyn-app/backend-go/internal/service"
	"github.com/rs/zerolog/log"
)

type UploadHandler struct {
	uploads *service.UploadService
}

func NewUploadHandler(uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Upload accepts one CSV file (multipart field "file") plus an optional
// "period_type" form value for sales batches ("30d" or "month", defaulting
// to one calendar month). The file kind itself is detected from the headers.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not open uploaded file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}

	period, ok := domain.ParsePeriodType(c.PostForm("period_type"))
	if !ok {
		period = domain.PeriodCalendarMonth
	}

	outcome, err := h.uploads.ProcessUpload(c.Request.Context(), fileHeader.Filename, data, period)
	if err != nil {
		var schemaErr *domain.SchemaError
		if errors.As(err, &schemaErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":             schemaErr.Error(),
				"missing_fields":    schemaErr.MissingFields,
				"available_headers": schemaErr.AvailableHeaders,
			})
			return
		}
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process upload"})
		return
	}

	c.JSON(http.StatusOK, outcome)
}
