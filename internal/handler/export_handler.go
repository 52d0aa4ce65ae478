package handler

import (
	"fmt"

	"classpoll/internal/services"

	"github.com/gin-gonic/gin"
)

// ExportHandler serves the CSV download endpoints.
type ExportHandler struct {
	exports *services.ExportService
}

func NewExportHandler(exports *services.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

func (h *ExportHandler) PollVotes(c *gin.Context) {
	id, ok := pollIDParam(c)
	if !ok {
		return
	}

	export, err := h.exports.PollVotes(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	writeAttachment(c, export)
}

func (h *ExportHandler) AllVotes(c *gin.Context) {
	export, err := h.exports.AllVotes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	writeAttachment(c, export)
}

func (h *ExportHandler) PollsSummary(c *gin.Context) {
	export, err := h.exports.PollsSummary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	writeAttachment(c, export)
}

func writeAttachment(c *gin.Context, export services.Export) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename))
	c.Data(200, "text/csv", export.Data)
}
