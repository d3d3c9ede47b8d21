package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/reportcard-service/internal/cache"
	"github.com/SAP-F-2025/reportcard-service/internal/events"
	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories/csvstore"
	"github.com/SAP-F-2025/reportcard-service/internal/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockScoreRepository is a mock implementation of ScoreRepository
type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) UpsertSubmission(ctx context.Context, key models.SubmissionKey, rows []models.ScoreRow) error {
	args := m.Called(ctx, key, rows)
	return args.Error(0)
}

func (m *MockScoreRepository) Find(ctx context.Context, studentName string, filters repositories.ScoreFilters) ([]models.ScoreRow, error) {
	args := m.Called(ctx, studentName, filters)
	rows, _ := args.Get(0).([]models.ScoreRow)
	return rows, args.Error(1)
}

func (m *MockScoreRepository) List(ctx context.Context, filters repositories.ScoreFilters) ([]models.ScoreRow, error) {
	args := m.Called(ctx, filters)
	rows, _ := args.Get(0).([]models.ScoreRow)
	return rows, args.Error(1)
}

func (m *MockScoreRepository) DistinctStudents(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

// MockSchoolProfileRepository is a mock implementation of SchoolProfileRepository
type MockSchoolProfileRepository struct {
	mock.Mock
}

func (m *MockSchoolProfileRepository) Get(ctx context.Context) (*models.SchoolProfile, error) {
	args := m.Called(ctx)
	profile, _ := args.Get(0).(*models.SchoolProfile)
	return profile, args.Error(1)
}

func (m *MockSchoolProfileRepository) Save(ctx context.Context, profile *models.SchoolProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type mockRepository struct {
	scores *MockScoreRepository
	school *MockSchoolProfileRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{scores: &MockScoreRepository{}, school: &MockSchoolProfileRepository{}}
}

func (m *mockRepository) Scores() repositories.ScoreRepository                 { return m.scores }
func (m *mockRepository) SchoolProfiles() repositories.SchoolProfileRepository { return m.school }
func (m *mockRepository) Close() error                                         { return nil }

// ===== TEST ENVIRONMENT =====

type testEnv struct {
	store     *csvstore.Store
	cache     cache.CacheService
	publisher *events.MockEventPublisher
	services  ServiceManager
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEnv wires every service over a file store in a temporary directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := csvstore.Open(t.TempDir(), "progress_multi.csv", "school_info.csv")
	require.NoError(t, err)

	logger := testLogger()
	publisher := events.NewMockEventPublisher(logger)
	cacheService := cache.NewMemoryCache()

	manager := NewServiceManager(Dependencies{
		Repo:            store,
		Cache:           cacheService,
		Publisher:       publisher,
		Validator:       validator.New(),
		Logger:          logger,
		FormTTL:         time.Hour,
		RankingCacheTTL: time.Minute,
	})

	return &testEnv{
		store:     store,
		cache:     cacheService,
		publisher: publisher,
		services:  manager,
	}
}

func (e *testEnv) save(t *testing.T, sub *models.StudentSubmission) *SubmissionRecord {
	t.Helper()
	record, err := e.services.Record().SaveSubmission(context.Background(), sub)
	require.NoError(t, err)
	return record
}

const testSession = "2024/2025"

func score(subject string, ca1, ca2, exam int) models.SubjectScore {
	return models.SubjectScore{
		Subject: subject,
		CA1:     models.ScorePair{Obtained: ca1, Max: 20},
		CA2:     models.ScorePair{Obtained: ca2, Max: 20},
		Exam:    models.ScorePair{Obtained: exam, Max: 60},
	}
}

func submission(student string, term models.Term, scores ...models.SubjectScore) *models.StudentSubmission {
	return &models.StudentSubmission{
		StudentName:    student,
		Class:          "JSS2A",
		NumberInClass:  "7",
		Term:           term,
		Session:        testSession,
		School:         models.SchoolProfile{Name: "Unity College", Address: "1 School Road"},
		Subjects:       scores,
		TeacherComment: "Good effort",
	}
}

// adaSubmission totals 135 / 200: Mathematics 85 (A), English 50 (C).
func adaSubmission() *models.StudentSubmission {
	return submission("Ada", models.TermFirst,
		score("Mathematics", 18, 17, 50),
		score("English", 10, 10, 30),
	)
}

// bolaSubmission totals 130 / 200: Mathematics 70, English 60.
func bolaSubmission() *models.StudentSubmission {
	return submission("Bola", models.TermFirst,
		score("Mathematics", 15, 15, 40),
		score("English", 12, 12, 36),
	)
}
