package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/ranking"
	"github.com/SAP-F-2025/reportcard-service/internal/report"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories"
	"github.com/SAP-F-2025/reportcard-service/internal/validator"
	"github.com/xuri/excelize/v2"
)

const progressExportName = "filtered_student_progress"

type exportService struct {
	repo     repositories.Repository
	rankings RankingService
	log      *ServiceLogger
}

func NewExportService(repo repositories.Repository, rankings RankingService, logger *slog.Logger) ExportService {
	return &exportService{
		repo:     repo,
		rankings: rankings,
		log:      NewServiceLogger(logger, LogConfig{Service: "reportcard", Component: "exports"}),
	}
}

// ExportProgress pivots the filtered rows into one line per (student, class,
// term, session) with a column of total obtained per subject.
func (s *exportService) ExportProgress(ctx context.Context, filter ExportFilter, format report.Format) (doc *report.Document, err error) {
	defer s.log.WithOperation(ctx, "export_progress", "progress").LogResult(&err)

	if err := checkTableFormat(format); err != nil {
		return nil, err
	}
	filters, err := filter.scoreFilters()
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.Scores().List(ctx, filters)
	if err != nil {
		return nil, wrap("list scores", err)
	}

	table := ranking.Pivot(rows)
	records := make([][]interface{}, 0, len(table.Rows))
	for _, line := range table.Rows {
		record := []interface{}{line.StudentName, line.Class, string(line.Term), line.Session}
		for _, subject := range table.Subjects {
			record = append(record, line.Totals[subject])
		}
		records = append(records, record)
	}

	data, err := writeTable(format, "Progress", table.Header(), records)
	if err != nil {
		return nil, err
	}
	return &report.Document{
		FileName:    progressExportName + "." + string(format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

// ExportOverallRanking writes the overall leaderboard of a term and session.
func (s *exportService) ExportOverallRanking(ctx context.Context, term models.Term, session string, format report.Format) (doc *report.Document, err error) {
	defer s.log.WithOperation(ctx, "export_overall_ranking", "ranking").LogResult(&err)

	if err := checkTableFormat(format); err != nil {
		return nil, err
	}

	standings, err := s.rankings.OverallRanking(ctx, term, session)
	if err != nil {
		return nil, err
	}

	header := []string{"Position", "Student_Name", "Class", "Total_Obt", "Total_Max", "Percentage"}
	records := make([][]interface{}, 0, len(standings))
	for _, standing := range standings {
		records = append(records, []interface{}{
			standing.Position,
			standing.StudentName,
			standing.Class,
			standing.TotalObtained,
			standing.TotalMax,
			FormatPercentage(standing.Percentage),
		})
	}

	data, err := writeTable(format, "Overall Ranking", header, records)
	if err != nil {
		return nil, err
	}

	name := strings.NewReplacer("/", "-", " ", "_").Replace(fmt.Sprintf("overall_ranking_%s_%s", term, session))
	return &report.Document{
		FileName:    name + "." + string(format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

// FormatPercentage rounds to two decimals and drops trailing zeros: "67.5%".
func FormatPercentage(p float64) string {
	return strconv.FormatFloat(math.Round(p*100)/100, 'f', -1, 64) + "%"
}

func (f ExportFilter) scoreFilters() (repositories.ScoreFilters, error) {
	var filters repositories.ScoreFilters
	var errs ValidationErrors

	if term := strings.TrimSpace(f.Term); term != "" && term != ExportAll {
		t := models.Term(term)
		if !t.IsValid() {
			errs.Add("term", "must be All, First Term, Second Term, or Third Term", term)
		}
		filters.Term = &t
	}
	if session := strings.TrimSpace(f.Session); session != "" && session != ExportAll {
		if !validator.IsAcademicSession(session) {
			errs.Add("session", "must be All or an academic session such as 2024/2025", session)
		}
		filters.Session = &session
	}

	if errs.HasErrors() {
		return filters, errs
	}
	return filters, nil
}

func checkTableFormat(format report.Format) error {
	switch format {
	case report.FormatCSV, report.FormatXLSX:
		return nil
	}
	return fmt.Errorf("%w: %q (expected csv or xlsx)", ErrInvalidFormat, format)
}

func writeTable(format report.Format, sheet string, header []string, records [][]interface{}) ([]byte, error) {
	if format == report.FormatXLSX {
		return writeExcelTable(sheet, header, records)
	}
	return writeCSVTable(header, records)
}

func writeCSVTable(header []string, records [][]interface{}) ([]byte, error) {
	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	line := make([]string, len(header))
	for _, record := range records {
		for i, value := range record {
			line[i] = fmt.Sprint(value)
		}
		if err := writer.Write(line[:len(record)]); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return []byte(buf.String()), nil
}

func writeExcelTable(sheet string, header []string, records [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel style: %w", err)
	}

	headerRow := make([]interface{}, len(header))
	for i, name := range header {
		headerRow[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("failed to write Excel header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("failed to style Excel header: %w", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := record
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write Excel row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
