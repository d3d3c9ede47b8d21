package handlers

import (
	"github.com/SAP-F-2025/reportcard-service/internal/report"
	"github.com/SAP-F-2025/reportcard-service/internal/services"
	"github.com/SAP-F-2025/reportcard-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	BaseHandler
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler:   NewBaseHandler(logger),
		exportService: exportService,
	}
}

// ExportProgress downloads the pivoted progress table
// @Summary Export student progress
// @Tags exports
// @Produce text/csv
// @Param term query string false "Term or All"
// @Param session query string false "Session or All"
// @Param format query string false "csv (default) or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Router /exports/progress [get]
func (h *ExportHandler) ExportProgress(c *gin.Context) {
	var filter services.ExportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.RespondBadPayload(c, err)
		return
	}

	doc, err := h.exportService.ExportProgress(c.Request.Context(), filter, parseFormat(c, report.FormatCSV))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.sendDocument(c, doc, false)
}

func (h *ExportHandler) ExportOverallRanking(c *gin.Context) {
	var query PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.RespondBadPayload(c, err)
		return
	}

	doc, err := h.exportService.ExportOverallRanking(c.Request.Context(), query.Term, query.Session, parseFormat(c, report.FormatXLSX))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.sendDocument(c, doc, false)
}
