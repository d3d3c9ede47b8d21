package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_ProgressCSV(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.save(t, bolaSubmission())
	env.save(t, adaSubmission())
	env.save(t, submission("Ada", models.TermSecond, score("Physics", 10, 10, 40)))

	doc, err := env.services.Export().ExportProgress(ctx, ExportFilter{Term: ExportAll, Session: ExportAll}, report.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "filtered_student_progress.csv", doc.FileName)
	assert.Equal(t, "text/csv; charset=utf-8", doc.ContentType)

	expected := "Student_Name,Class,Term,Session,English,Mathematics,Physics\n" +
		"Ada,JSS2A,First Term,2024/2025,50,85,0\n" +
		"Ada,JSS2A,Second Term,2024/2025,0,0,60\n" +
		"Bola,JSS2A,First Term,2024/2025,60,70,0\n"
	assert.Equal(t, expected, string(doc.Data))

	filtered, err := env.services.Export().ExportProgress(ctx, ExportFilter{Term: "Second Term"}, report.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "Student_Name,Class,Term,Session,Physics\nAda,JSS2A,Second Term,2024/2025,60\n", string(filtered.Data))

	empty, err := env.services.Export().ExportProgress(ctx, ExportFilter{Session: "2029/2030"}, report.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "Student_Name,Class,Term,Session\n", string(empty.Data))
}

func TestExportService_ProgressXLSX(t *testing.T) {
	env := newTestEnv(t)
	env.save(t, adaSubmission())

	doc, err := env.services.Export().ExportProgress(context.Background(), ExportFilter{}, report.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "filtered_student_progress.xlsx", doc.FileName)

	f, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Progress")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Student_Name", "Class", "Term", "Session", "English", "Mathematics"}, rows[0])
	assert.Equal(t, []string{"Ada", "JSS2A", "First Term", "2024/2025", "50", "85"}, rows[1])
}

func TestExportService_RejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.services.Export().ExportProgress(ctx, ExportFilter{}, report.Format("pdf"))
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.True(t, IsValidation(err))

	_, err = env.services.Export().ExportProgress(ctx, ExportFilter{Term: "Term 4", Session: "2024"}, report.FormatCSV)
	var fieldErrs ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 2)
}

func TestExportService_OverallRanking(t *testing.T) {
	env := newTestEnv(t)
	env.save(t, bolaSubmission())
	env.save(t, adaSubmission())

	doc, err := env.services.Export().ExportOverallRanking(context.Background(), models.TermFirst, testSession, report.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "overall_ranking_First_Term_2024-2025.xlsx", doc.FileName)

	f, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Overall Ranking")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Position", "Student_Name", "Class", "Total_Obt", "Total_Max", "Percentage"}, rows[0])
	assert.Equal(t, []string{"1st", "Ada", "JSS2A", "135", "200", "67.5%"}, rows[1])
	assert.Equal(t, []string{"2nd", "Bola", "JSS2A", "130", "200", "65%"}, rows[2])
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "67.5%", FormatPercentage(67.5))
	assert.Equal(t, "66.67%", FormatPercentage(200.0/3.0))
	assert.Equal(t, "0%", FormatPercentage(0))
	assert.Equal(t, "100%", FormatPercentage(100))
}
