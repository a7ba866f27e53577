package handlers

import (
	"github.com/alimgiray/inbox/internal/services"
	"github.com/alimgiray/inbox/pkg/logger"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportEmails handles GET /exports/emails?tab=&q= and streams an XLSX workbook
func (h *ExportHandler) ExportEmails(c *gin.Context) {
	f, err := h.exportService.ExportEmails(c.Request.Context(), emailFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="emails.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		logger.WithError(err).Warn("Failed to write export")
	}
}
