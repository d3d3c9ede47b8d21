package services

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/reportcard-service/internal/cache"
	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRankingService_OverallRanking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.save(t, bolaSubmission())
	env.save(t, adaSubmission())
	env.save(t, submission("Chidi", models.TermSecond, score("Mathematics", 20, 20, 60)))

	standings, err := env.services.Ranking().OverallRanking(ctx, models.TermFirst, testSession)
	require.NoError(t, err)
	require.Len(t, standings, 2)

	assert.Equal(t, "Ada", standings[0].StudentName)
	assert.Equal(t, 135, standings[0].TotalObtained)
	assert.InDelta(t, 67.5, standings[0].Percentage, 1e-9)
	assert.Equal(t, "1st", standings[0].Position)
	assert.Equal(t, "Bola", standings[1].StudentName)
	assert.Equal(t, "2nd", standings[1].Position)

	empty, err := env.services.Ranking().OverallRanking(ctx, models.TermThird, testSession)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestRankingService_SubjectRankingAndSubjects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.save(t, adaSubmission())
	env.save(t, bolaSubmission())

	subjects, err := env.services.Ranking().Subjects(ctx, models.TermFirst, testSession)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mathematics", "English"}, subjects)

	english, err := env.services.Ranking().SubjectRanking(ctx, models.TermFirst, testSession, " English ")
	require.NoError(t, err)
	require.Len(t, english, 2)
	assert.Equal(t, "Bola", english[0].StudentName)
	assert.Equal(t, 60, english[0].TotalObtained)
	assert.Equal(t, "Ada", english[1].StudentName)
	assert.Equal(t, "2nd", english[1].Position)

	none, err := env.services.Ranking().SubjectRanking(ctx, models.TermFirst, testSession, "Latin")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = env.services.Ranking().SubjectRanking(ctx, models.TermFirst, testSession, "  ")
	assert.True(t, IsValidation(err))
}

func TestRankingService_RejectsInvalidPeriod(t *testing.T) {
	repo := newMockRepository()
	service := NewRankingService(repo, cache.NewMemoryCache(), time.Minute, testLogger())
	ctx := context.Background()

	_, err := service.OverallRanking(ctx, "Fourth Term", testSession)
	assert.True(t, IsValidation(err))

	_, err = service.Subjects(ctx, models.TermFirst, "2024/2026")
	require.Error(t, err)

	var fieldErrs ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "session", fieldErrs[0].Field)

	repo.scores.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestRankingService_CachesResults(t *testing.T) {
	repo := newMockRepository()
	rows := submission("Ada", models.TermFirst, score("Mathematics", 10, 10, 30)).Rows()
	repo.scores.On("List", mock.Anything, repositories.ForPeriod(models.TermFirst, testSession)).Return(rows, nil).Once()

	service := NewRankingService(repo, cache.NewMemoryCache(), time.Minute, testLogger())
	ctx := context.Background()

	first, err := service.OverallRanking(ctx, models.TermFirst, testSession)
	require.NoError(t, err)
	second, err := service.OverallRanking(ctx, models.TermFirst, testSession)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.InDelta(t, 50.0, second[0].Percentage, 1e-9)
	repo.scores.AssertNumberOfCalls(t, "List", 1)
}

func TestRankingService_ZeroTTLDisablesCache(t *testing.T) {
	repo := newMockRepository()
	repo.scores.On("List", mock.Anything, mock.Anything).Return([]models.ScoreRow{}, nil)

	service := NewRankingService(repo, cache.NewMemoryCache(), 0, testLogger())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := service.Subjects(ctx, models.TermFirst, testSession)
		require.NoError(t, err)
	}
	repo.scores.AssertNumberOfCalls(t, "List", 2)
}
