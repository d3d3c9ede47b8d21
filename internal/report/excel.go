package report

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName = "Report Card"

	paperA4       = 9
	marginInches  = 0.59 // 1.5 cm
	lastColumn    = "K"
	obtainedLabel = "Mark Obtained"
	maxLabel      = "Mark Obtainable"
)

var componentHeaders = []string{"1st CA", "2nd CA", "Exam", "Total"}

// ExcelRenderer lays the report card out on an A4 portrait sheet.
type ExcelRenderer struct{}

func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{}
}

func (r *ExcelRenderer) Format() Format {
	return FormatXLSX
}

type excelStyles struct {
	title, subtitle, label, header, cell, low, text int
}

// sheetWriter records the first error so layout code reads top to bottom.
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	styles excelStyles
	row    int
	err    error
}

func (w *sheetWriter) do(fn func() error) {
	if w.err == nil {
		w.err = fn()
	}
}

func (w *sheetWriter) cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil && w.err == nil {
		w.err = err
	}
	return name
}

func (w *sheetWriter) set(col, row int, value interface{}, style int) {
	axis := w.cell(col, row)
	w.do(func() error { return w.f.SetCellValue(w.sheet, axis, value) })
	w.do(func() error { return w.f.SetCellStyle(w.sheet, axis, axis, style) })
}

// merged writes value into a merged range. Only the top-left cell holds a
// value; excelize redirects writes on covered cells to it.
func (w *sheetWriter) merged(first, last string, value interface{}, style int) {
	w.do(func() error { return w.f.SetCellValue(w.sheet, first, value) })
	w.do(func() error { return w.f.MergeCell(w.sheet, first, last) })
	w.do(func() error { return w.f.SetCellStyle(w.sheet, first, last, style) })
}

// banner writes a line merged across the table width.
func (w *sheetWriter) banner(value string, style int) {
	w.merged(w.cell(1, w.row), fmt.Sprintf("%s%d", lastColumn, w.row), value, style)
	w.row++
}

func (w *sheetWriter) line(value string) {
	w.banner(value, w.styles.text)
}

func (r *ExcelRenderer) Render(ctx context.Context, card *models.ReportCard) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	styles, err := newExcelStyles(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel styles: %w", err)
	}

	w := &sheetWriter{f: f, sheet: SheetName, styles: styles, row: 1}
	r.writeHeader(w, card)
	r.writeStudent(w, card)
	r.writeTable(w, card)
	r.writeSummary(w, card)
	r.writeComments(w, card)
	r.setupPage(w, card)
	if w.err != nil {
		return nil, fmt.Errorf("failed to lay out report card: %w", w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return &Document{
		FileName:    FileName(card.StudentName, card.Term, card.Session, FormatXLSX),
		ContentType: FormatXLSX.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

func newExcelStyles(f *excelize.File) (excelStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}

	var s excelStyles
	defs := map[*int]*excelize.Style{
		&s.title:    {Font: &excelize.Font{Bold: true, Size: 12}, Alignment: center},
		&s.subtitle: {Font: &excelize.Font{Size: 10}, Alignment: center},
		&s.label:    {Font: &excelize.Font{Bold: true, Size: 9}},
		&s.header: {
			Font:      &excelize.Font{Bold: true, Size: 8, Color: "F5F5F5"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"808080"}},
			Alignment: center,
			Border:    border,
		},
		&s.cell: {Font: &excelize.Font{Size: 8}, Alignment: center, Border: border},
		&s.low:  {Font: &excelize.Font{Size: 8, Color: LowMarkColor}, Alignment: center, Border: border},
		&s.text: {Font: &excelize.Font{Size: 9}, Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}},
	}

	for dst, style := range defs {
		id, err := f.NewStyle(style)
		if err != nil {
			return s, err
		}
		*dst = id
	}
	return s, nil
}

func (r *ExcelRenderer) writeHeader(w *sheetWriter, card *models.ReportCard) {
	school := card.School.WithDefaults()
	w.banner(school.Name, w.styles.title)
	w.banner(school.Address, w.styles.subtitle)
	w.row++
	w.banner(card.Title(), w.styles.title)
	w.row++
}

func (r *ExcelRenderer) writeStudent(w *sheetWriter, card *models.ReportCard) {
	fields := [][2]string{
		{"Student Name:", card.StudentName},
		{"Class:", card.Class},
		{"No in Class:", card.NumberInClass},
	}
	for _, field := range fields {
		w.set(1, w.row, field[0], w.styles.label)
		w.merged(w.cell(2, w.row), w.cell(6, w.row), field[1], w.styles.text)
		w.row++
	}
	w.row++
}

// writeTable writes the two header rows then one row per subject.
func (r *ExcelRenderer) writeTable(w *sheetWriter, card *models.ReportCard) {
	top, sub := w.row, w.row+1

	vertical := func(col int, label string) {
		w.merged(w.cell(col, top), w.cell(col, sub), label, w.styles.header)
	}

	vertical(1, "Subject")
	for i, label := range componentHeaders {
		col := 2 + i*2
		w.merged(w.cell(col, top), w.cell(col+1, top), label, w.styles.header)
		w.set(col, sub, obtainedLabel, w.styles.header)
		w.set(col+1, sub, maxLabel, w.styles.header)
	}
	vertical(10, "Grade")
	vertical(11, "Remark")
	w.do(func() error { return w.f.SetRowHeight(w.sheet, sub, 24) })

	w.row = sub + 1
	for _, row := range card.Rows {
		w.set(1, w.row, row.Subject, w.styles.cell)
		for i, pair := range row.Scores() {
			col := 2 + i*2
			style := w.styles.cell
			if pair.IsLow() {
				style = w.styles.low
			}
			w.set(col, w.row, pair.Obtained, style)
			w.set(col+1, w.row, pair.Max, w.styles.cell)
		}
		w.set(10, w.row, string(row.Grade), w.styles.cell)
		w.set(11, w.row, string(row.Remark), w.styles.cell)
		w.row++
	}
	w.row++
}

func (r *ExcelRenderer) writeSummary(w *sheetWriter, card *models.ReportCard) {
	s := card.Summary
	w.line(fmt.Sprintf("Total Marks: %d / %d", s.TotalObtained, s.TotalMax))
	w.line(fmt.Sprintf("Average Score: %.2f", s.Average))
	w.line(fmt.Sprintf("Percentage: %.2f%%", s.Percentage))
	w.row++
}

func (r *ExcelRenderer) writeComments(w *sheetWriter, card *models.ReportCard) {
	if card.TeacherComment != "" {
		w.line("Class Teacher's Comment: " + card.TeacherComment)
		w.row++
	}
	w.line(principalLine)
	if card.PrincipalComment != "" {
		w.line(card.PrincipalComment)
	}
}

func (r *ExcelRenderer) setupPage(w *sheetWriter, card *models.ReportCard) {
	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 20},
		{"B", "I", 9},
		{"J", "J", 8},
		{"K", "K", 13},
	}
	for _, cw := range widths {
		cw := cw
		w.do(func() error { return w.f.SetColWidth(w.sheet, cw.from, cw.to, cw.width) })
	}

	size, orientation, fit, fitToPage := paperA4, "portrait", 1, true
	margin := marginInches
	w.do(func() error {
		return w.f.SetSheetProps(w.sheet, &excelize.SheetPropsOptions{FitToPage: &fitToPage})
	})
	w.do(func() error {
		return w.f.SetPageLayout(w.sheet, &excelize.PageLayoutOptions{
			Size:        &size,
			Orientation: &orientation,
			FitToWidth:  &fit,
		})
	})
	w.do(func() error {
		return w.f.SetPageMargins(w.sheet, &excelize.PageLayoutMarginsOptions{
			Top: &margin, Bottom: &margin, Left: &margin, Right: &margin,
		})
	})
	w.do(func() error {
		return w.f.SetDocProps(&excelize.DocProperties{
			Title:   card.Title(),
			Subject: card.StudentName,
			Creator: card.School.WithDefaults().Name,
		})
	})
}
