package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SAP-F-2025/reportcard-service/internal/grading"
	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submission(student string, term models.Term, session string, subjects ...string) *models.StudentSubmission {
	sub := &models.StudentSubmission{
		StudentName:    student,
		Class:          "JSS2A",
		NumberInClass:  "30",
		Term:           term,
		Session:        session,
		School:         models.SchoolProfile{Name: "Unity College", Address: "1 School Road, Ikeja"},
		TeacherComment: "Keeps improving, \"steady\" work",
	}
	for i, subject := range subjects {
		score := models.DefaultSubjectScore(subject)
		score.CA1.Obtained = 10 + i
		score.CA2.Obtained = 12
		score.Exam.Obtained = 40 - i
		sub.Subjects = append(sub.Subjects, score)
	}
	return sub
}

func upsert(t *testing.T, store *ScoreStore, sub *models.StudentSubmission) {
	t.Helper()
	require.NoError(t, store.UpsertSubmission(context.Background(), sub.Key(), sub.Rows()))
}

func TestOpenScoreStore_MissingFileIsEmpty(t *testing.T) {
	store, err := OpenScoreStore(filepath.Join(t.TempDir(), "progress_multi.csv"))
	require.NoError(t, err)

	rows, err := store.List(context.Background(), repositories.ScoreFilters{})
	require.NoError(t, err)
	assert.Empty(t, rows)

	students, err := store.DistinctStudents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestScoreStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "progress_multi.csv")
	store, err := OpenScoreStore(path)
	require.NoError(t, err)

	sub := submission("Ada", models.TermFirst, "2024/2025", "Mathematics", "English")
	upsert(t, store, sub)

	reopened, err := OpenScoreStore(path)
	require.NoError(t, err)
	assert.Empty(t, reopened.MissingColumns())

	rows, err := reopened.List(context.Background(), repositories.ScoreFilters{})
	require.NoError(t, err)
	assert.Equal(t, sub.Rows(), rows)
}

func TestScoreStore_UpsertIsIdempotent(t *testing.T) {
	store, err := OpenScoreStore(filepath.Join(t.TempDir(), "progress_multi.csv"))
	require.NoError(t, err)

	other := submission("Bola", models.TermFirst, "2024/2025", "Mathematics")
	upsert(t, store, other)

	sub := submission("Ada", models.TermFirst, "2024/2025", "Mathematics", "English", "Physics")
	upsert(t, store, sub)
	upsert(t, store, sub)

	rows, err := store.List(context.Background(), repositories.ScoreFilters{})
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	found, err := store.Find(context.Background(), "Ada", repositories.ForPeriod(models.TermFirst, "2024/2025"))
	require.NoError(t, err)
	assert.Len(t, found, 3)
}

func TestScoreStore_UpsertReplacesWholeSubmission(t *testing.T) {
	store, err := OpenScoreStore(filepath.Join(t.TempDir(), "progress_multi.csv"))
	require.NoError(t, err)

	upsert(t, store, submission("Ada", models.TermFirst, "2024/2025", "Mathematics", "English", "Physics"))
	upsert(t, store, submission("Ada", models.TermFirst, "2024/2025", "Chemistry"))

	found, err := store.Find(context.Background(), "Ada", repositories.ForPeriod(models.TermFirst, "2024/2025"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Chemistry", found[0].Subject)
}

func TestScoreStore_FindLatestWhenPeriodOpen(t *testing.T) {
	store, err := OpenScoreStore(filepath.Join(t.TempDir(), "progress_multi.csv"))
	require.NoError(t, err)

	upsert(t, store, submission("Ada", models.TermSecond, "2024/2025", "Mathematics", "English"))
	upsert(t, store, submission("Ada", models.TermFirst, "2024/2025", "Biology"))
	upsert(t, store, submission("Bola", models.TermThird, "2024/2025", "Mathematics"))

	found, err := store.Find(context.Background(), "Ada", repositories.ScoreFilters{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, models.TermFirst, found[0].Term)
	assert.Equal(t, "Biology", found[0].Subject)

	term := models.TermSecond
	found, err = store.Find(context.Background(), "Ada", repositories.ScoreFilters{Term: &term})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = store.Find(context.Background(), "Chidi", repositories.ScoreFilters{})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestScoreStore_DistinctStudentsFirstSeen(t *testing.T) {
	store, err := OpenScoreStore(filepath.Join(t.TempDir(), "progress_multi.csv"))
	require.NoError(t, err)

	upsert(t, store, submission("Zainab", models.TermFirst, "2024/2025", "Mathematics"))
	upsert(t, store, submission("Ada", models.TermFirst, "2024/2025", "Mathematics"))
	upsert(t, store, submission("Zainab", models.TermSecond, "2024/2025", "Mathematics"))

	students, err := store.DistinctStudents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Zainab", "Ada"}, students)
}

func TestLoadScoreRows_BackfillsMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress_multi.csv")
	content := "Student_Name,Class,Term,Session,Subject,CA1_Obt,CA1_Max,CA2_Obt,CA2_Max,Exam_Obt,Exam_Max,Total_Obt,Total_Max,Extra\n" +
		"Ada,JSS1,First Term,2023/2024,Mathematics,18.0,20,17,20,50,60,85,100,ignored\n" +
		",,,,,,,,,,,,,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, missing, err := LoadScoreRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Ada", row.StudentName)
	assert.Equal(t, 18, row.CA1Obtained)
	assert.Equal(t, 85, row.TotalObtained)
	assert.Equal(t, grading.Letter("A"), row.Grade)
	assert.Equal(t, grading.Remark("Excellent"), row.Remark)
	assert.Equal(t, "", row.TeacherComment)
	assert.Equal(t, "", row.SchoolName)
	assert.Equal(t, "", row.NumberInClass)
	assert.ElementsMatch(t, []string{
		ColGrade, ColRemark, ColTeacherComment, ColPrincipalComment, ColSchoolName, ColSchoolAddress, ColNumber,
	}, missing)
}

func TestLoadScoreRows_DerivesMissingTotals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress_multi.csv")
	content := "Student_Name,Class,Term,Session,Subject,CA1_Obt,CA1_Max,CA2_Obt,CA2_Max,Exam_Obt,Exam_Max\n" +
		"Ada,JSS1,First Term,2023/2024,Mathematics,18,20,17,20,50,60\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, missing, err := LoadScoreRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 85, rows[0].TotalObtained)
	assert.Equal(t, 100, rows[0].TotalMax)
	assert.Equal(t, grading.Letter("A"), rows[0].Grade)
	assert.Equal(t, grading.Remark("Excellent"), rows[0].Remark)
	assert.Contains(t, missing, ColTotalObtained)
	assert.Contains(t, missing, ColTotalMax)
}

func TestLoadScoreRows_KeepsStoredTotals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress_multi.csv")
	content := "Student_Name,Term,Session,Subject,CA1_Obt,CA1_Max,Total_Obt,Total_Max,Grade,Remark\n" +
		"Ada,First Term,2023/2024,Mathematics,5,20,40,100,A,Excellent\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, _, err := LoadScoreRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 40, rows[0].TotalObtained)
	assert.Equal(t, grading.Letter("F"), rows[0].Grade)
	assert.Equal(t, grading.Remark("Poor"), rows[0].Remark)
}

func TestScoreStore_FailedWriteKeepsPreviousState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "progress_multi.csv")
	store, err := OpenScoreStore(path)
	require.NoError(t, err)

	first := submission("Ada", models.TermFirst, "2024/2025", "Mathematics")
	upsert(t, store, first)

	// A directory in place of the file makes the final rename fail.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))

	err = store.UpsertSubmission(context.Background(), first.Key(), submission("Ada", models.TermFirst, "2024/2025", "English").Rows())
	require.Error(t, err)

	rows, err := store.List(context.Background(), repositories.ScoreFilters{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Mathematics", rows[0].Subject)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must be cleaned up")
}

func TestScoreStore_CancelledContext(t *testing.T) {
	store, err := OpenScoreStore(filepath.Join(t.TempDir(), "progress_multi.csv"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.List(ctx, repositories.ScoreFilters{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 18, parseInt("18"))
	assert.Equal(t, 18, parseInt("18.0"))
	assert.Equal(t, 0, parseInt(""))
	assert.Equal(t, 0, parseInt("n/a"))
	assert.Equal(t, 0, parseInt("NaN"))
}
