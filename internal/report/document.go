package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
	FormatCSV  Format = "csv"
)

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	}
	return "application/octet-stream"
}

// Document is a rendered artifact ready to be served inline or as a download.
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Renderer turns a report card into a document.
type Renderer interface {
	Format() Format
	Render(ctx context.Context, card *models.ReportCard) (*Document, error)
}

var fileNameReplacer = strings.NewReplacer("/", "-", "\\", "-", ":", "-", "\x00", "")

// FileName names the document of one (student, term, session).
func FileName(student string, term models.Term, session string, format Format) string {
	name := fmt.Sprintf("%s_report_card_%s_%s", student, term, session)
	return fileNameReplacer.Replace(name) + "." + string(format)
}

// principalLine leaves room for a handwritten comment.
var principalLine = "Principal's Comment: " + strings.Repeat("_", 40)

// LowMarkColor is used for obtained marks below half of the obtainable mark.
const LowMarkColor = "FF0000"
