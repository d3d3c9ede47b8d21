package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/report"
	"github.com/gin-gonic/gin"
)

// ParseStringIDParam returns the trimmed path parameter, or responds 400 and
// returns "" when it is blank.
func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := strings.TrimSpace(c.Param(param))
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: param + " cannot be empty",
		})
		return ""
	}
	return idStr
}

// PeriodQuery is the term and session of a ranking or report request.
type PeriodQuery struct {
	Term    models.Term `form:"term" binding:"required"`
	Session string      `form:"session" binding:"required"`
}

// parseFormat reads the "format" query parameter, defaulting to def.
func parseFormat(c *gin.Context, def report.Format) report.Format {
	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	if format == "" {
		return def
	}
	return report.Format(format)
}

// wantsInline reports whether the document should be displayed rather than
// downloaded. HTML defaults to inline.
func wantsInline(c *gin.Context, format report.Format) bool {
	switch strings.ToLower(c.Query("disposition")) {
	case "inline":
		return true
	case "attachment":
		return false
	}
	return format == report.FormatHTML
}
