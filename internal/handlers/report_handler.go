package handlers

import (
	"github.com/SAP-F-2025/reportcard-service/internal/report"
	"github.com/SAP-F-2025/reportcard-service/internal/services"
	"github.com/SAP-F-2025/reportcard-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	BaseHandler
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   NewBaseHandler(logger),
		reportService: reportService,
	}
}

// GenerateReport renders the report card of a stored submission
// @Summary Generate report card
// @Tags reports
// @Param student path string true "Student name"
// @Param term query string true "Term"
// @Param session query string true "Session"
// @Param format query string false "xlsx (default) or html"
// @Param disposition query string false "inline or attachment"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /reports/{student} [get]
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	student := ParseStringIDParam(c, "student")
	if student == "" {
		return
	}
	var query PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.RespondBadPayload(c, err)
		return
	}
	format := parseFormat(c, report.FormatXLSX)

	h.LogRequest(c, "Generating report card", "student", student, "term", query.Term, "session", query.Session, "format", format)

	doc, err := h.reportService.GenerateReport(c.Request.Context(), student, query.Term, query.Session, format)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.sendDocument(c, doc, wantsInline(c, format))
}
