package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/report"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selection(student string, term models.Term) models.FormSelection {
	return models.FormSelection{StudentName: student, Term: term, Session: testSession}
}

func strPtr(s string) *string { return &s }

func TestFormService_OpenNewStudent(t *testing.T) {
	env := newTestEnv(t)

	state, err := env.services.Form().Open(context.Background(), selection(" Ada ", models.TermFirst))
	require.NoError(t, err)

	assert.NotEmpty(t, state.ID)
	assert.Equal(t, "Ada", state.Selection.StudentName)
	assert.Equal(t, 1, state.Generation)
	assert.Equal(t, models.BaseSubjects, state.Subjects)
	assert.Empty(t, state.Class)
	assert.Equal(t, models.DefaultSchoolName, state.School.Name)
	assert.Equal(t, models.DefaultSubjectScore("Mathematics"), state.ScoreFor("Mathematics"))

	_, err = env.services.Form().Open(context.Background(), models.FormSelection{Term: "Fourth Term", Session: testSession})
	assert.True(t, IsValidation(err))
}

func TestFormService_PrefillExactPeriod(t *testing.T) {
	env := newTestEnv(t)
	sub := adaSubmission()
	sub.Subjects = append(sub.Subjects, score("Physics", 9, 8, 40))
	env.save(t, sub)

	state, err := env.services.Form().Open(context.Background(), selection("Ada", models.TermFirst))
	require.NoError(t, err)

	assert.Equal(t, []string{"Mathematics", "English", "Physics"}, state.Subjects)
	assert.Equal(t, "JSS2A", state.Class)
	assert.Equal(t, "7", state.NumberInClass)
	assert.Equal(t, "Unity College", state.School.Name)
	assert.Equal(t, "Good effort", state.TeacherComment)
	assert.Equal(t, 40, state.ScoreFor("Physics").Exam.Obtained)
	assert.Equal(t, 18, state.ScoreFor("Mathematics").CA1.Obtained)
}

func TestFormService_PrefillFromLatestSubmission(t *testing.T) {
	env := newTestEnv(t)
	sub := adaSubmission()
	sub.Subjects = append(sub.Subjects, score("Physics", 9, 8, 40))
	env.save(t, sub)

	state, err := env.services.Form().Open(context.Background(), selection("Ada", models.TermSecond))
	require.NoError(t, err)

	assert.Equal(t, []string{"Mathematics", "English", "Physics"}, state.Subjects)
	assert.Equal(t, "JSS2A", state.Class)
	assert.Equal(t, "Good effort", state.TeacherComment)
	assert.Empty(t, state.Scores)
	assert.Equal(t, models.DefaultSubjectScore("Physics"), state.ScoreFor("Physics"))
}

func TestFormService_Select(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forms := env.services.Form()

	state, err := forms.Open(ctx, selection("Ada", models.TermFirst))
	require.NoError(t, err)

	_, err = forms.Update(ctx, state.ID, &models.FormUpdate{Class: strPtr("JSS3B")})
	require.NoError(t, err)

	same, err := forms.Select(ctx, state.ID, selection("Ada", models.TermFirst))
	require.NoError(t, err)
	assert.Equal(t, "JSS3B", same.Class)
	assert.Equal(t, 1, same.Generation)

	changed, err := forms.Select(ctx, state.ID, selection("Ada", models.TermSecond))
	require.NoError(t, err)
	assert.Empty(t, changed.Class)
	assert.Equal(t, 2, changed.Generation)
	assert.Equal(t, models.TermSecond, changed.Selection.Term)
}

func TestFormService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forms := env.services.Form()

	state, err := forms.Open(ctx, selection("Ada", models.TermFirst))
	require.NoError(t, err)

	updated, err := forms.Update(ctx, state.ID, &models.FormUpdate{
		Class:          strPtr(" JSS2A "),
		CustomSubjects: strPtr("Physics, mathematics"),
		Scores:         map[string]models.SubjectScore{"physics": score("", 10, 10, 50)},
	})
	require.NoError(t, err)
	assert.Equal(t, "JSS2A", updated.Class)
	assert.Equal(t, []string{"Mathematics", "English", "Physics"}, updated.Subjects)
	assert.Equal(t, "Physics", updated.ScoreFor("Physics").Subject)
	assert.Equal(t, 50, updated.ScoreFor("Physics").Exam.Obtained)

	stored, err := forms.Get(ctx, state.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.ScoreFor("Physics").CA1.Obtained)

	_, err = forms.Update(ctx, state.ID, &models.FormUpdate{
		Scores: map[string]models.SubjectScore{"Latin": score("", 1, 1, 1)},
	})
	var fieldErrs ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "scores.Latin", fieldErrs[0].Field)

	zeroMax := score("", 1, 1, 1)
	zeroMax.Exam.Max = 0
	_, err = forms.Update(ctx, state.ID, &models.FormUpdate{
		Scores: map[string]models.SubjectScore{"English": zeroMax},
	})
	assert.True(t, IsValidation(err))

	_, err = forms.Update(ctx, state.ID, nil)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestFormService_PreviewAndSave(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forms := env.services.Form()

	state, err := forms.Open(ctx, selection("Ada", models.TermFirst))
	require.NoError(t, err)

	_, err = forms.Update(ctx, state.ID, &models.FormUpdate{
		Class:          strPtr("JSS2A"),
		CustomSubjects: strPtr("Physics"),
		Scores: map[string]models.SubjectScore{
			"Mathematics": score("", 18, 17, 50),
			"Physics":     score("", 10, 10, 40),
		},
	})
	require.NoError(t, err)

	card, err := forms.Preview(ctx, state.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", card.StudentName)
	assert.Len(t, card.Rows, 3)
	assert.Equal(t, 145, card.Summary.TotalObtained)
	assert.Equal(t, 300, card.Summary.TotalMax)
	assert.Equal(t, models.DefaultSchoolName, card.School.Name)

	saved, record, err := forms.Save(ctx, state.ID)
	require.NoError(t, err)
	assert.Len(t, record.Rows, 3)
	assert.Empty(t, saved.CustomSubjects)
	assert.Equal(t, []string{"Mathematics", "English", "Physics"}, saved.Subjects)
	assert.Equal(t, 40, saved.ScoreFor("Physics").Exam.Obtained)
	assert.Equal(t, 2, saved.Generation)

	rows, err := env.store.Scores().Find(ctx, "Ada", repositories.ForPeriod(models.TermFirst, testSession))
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestFormService_Report(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forms := env.services.Form()

	state, err := forms.Open(ctx, selection("Ada", models.TermFirst))
	require.NoError(t, err)

	doc, err := forms.Report(ctx, state.ID, report.FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, "Ada_report_card_First Term_2024-2025.html", doc.FileName)

	// Rendering never saves.
	rows, err := env.store.Scores().Find(ctx, "Ada", repositories.ForPeriod(models.TermFirst, testSession))
	require.NoError(t, err)
	assert.Empty(t, rows)

	blank, err := forms.Open(ctx, selection("", models.TermFirst))
	require.NoError(t, err)
	_, err = forms.Report(ctx, blank.ID, report.FormatHTML)
	assert.True(t, IsBusinessRule(err))
	assert.False(t, IsValidation(err))

	_, _, err = forms.Save(ctx, blank.ID)
	assert.True(t, IsBusinessRule(err))
}

func TestFormService_UnknownForm(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forms := env.services.Form()

	_, err := forms.Get(ctx, "not-a-form")
	assert.ErrorIs(t, err, ErrFormNotFound)

	_, err = forms.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrFormNotFound)
	assert.True(t, IsNotFound(err))

	state, err := forms.Open(ctx, selection("Ada", models.TermFirst))
	require.NoError(t, err)
	require.NoError(t, forms.Close(ctx, state.ID))

	_, err = forms.Get(ctx, state.ID)
	assert.ErrorIs(t, err, ErrFormNotFound)
	assert.ErrorIs(t, forms.Close(ctx, state.ID), ErrFormNotFound)
}
