package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
)

// HTMLRenderer produces the inline preview of a report card.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{tmpl: reportTemplate}
}

func (r *HTMLRenderer) Format() Format {
	return FormatHTML
}

func (r *HTMLRenderer) Render(ctx context.Context, card *models.ReportCard) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view := struct {
		*models.ReportCard
		School        models.SchoolProfile
		Title         string
		Components    []string
		PrincipalLine string
	}{
		ReportCard:    card,
		School:        card.School.WithDefaults(),
		Title:         card.Title(),
		Components:    componentHeaders,
		PrincipalLine: principalLine,
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render report preview: %w", err)
	}

	return &Document{
		FileName:    FileName(card.StudentName, card.Term, card.Session, FormatHTML),
		ContentType: FormatHTML.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"fixed2": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  @page { size: A4 portrait; margin: 1.5cm; }
  body { font-family: Helvetica, Arial, sans-serif; font-size: 9pt; }
  .center { text-align: center; }
  h1, h2 { font-size: 12pt; margin: 4px 0; }
  .address { font-size: 10pt; }
  table { border-collapse: collapse; margin: 12px 0; }
  th, td { border: 0.5px solid #000; padding: 3px 6px; text-align: center; font-size: 8pt; }
  th { background: #808080; color: #f5f5f5; }
  td.low { color: #ff0000; }
</style>
</head>
<body>
<h1 class="center">{{.School.Name}}</h1>
<p class="center address">{{.School.Address}}</p>
<h2 class="center">{{.Title}}</h2>

<p>Student Name: {{.StudentName}}<br>
Class: {{.Class}}<br>
No in Class: {{.NumberInClass}}</p>

<table>
  <thead>
    <tr>
      <th rowspan="2">Subject</th>
      {{- range .Components}}
      <th colspan="2">{{.}}</th>
      {{- end}}
      <th rowspan="2">Grade</th>
      <th rowspan="2">Remark</th>
    </tr>
    <tr>
      {{- range .Components}}
      <th>Mark Obtained</th><th>Mark Obtainable</th>
      {{- end}}
    </tr>
  </thead>
  <tbody>
    {{- range .Rows}}
    <tr>
      <td>{{.Subject}}</td>
      {{- range .Scores}}
      <td{{if .IsLow}} class="low"{{end}}>{{.Obtained}}</td><td>{{.Max}}</td>
      {{- end}}
      <td>{{.Grade}}</td>
      <td>{{.Remark}}</td>
    </tr>
    {{- end}}
  </tbody>
</table>

<p>Total Marks: {{.Summary.TotalObtained}} / {{.Summary.TotalMax}}<br>
Average Score: {{fixed2 .Summary.Average}}<br>
Percentage: {{fixed2 .Summary.Percentage}}%</p>

{{if .TeacherComment}}<p>Class Teacher's Comment: {{.TeacherComment}}</p>{{end}}
<p>{{.PrincipalLine}}</p>
{{if .PrincipalComment}}<p>{{.PrincipalComment}}</p>{{end}}
</body>
</html>
`))
