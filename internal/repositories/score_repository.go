package repositories

import (
	"context"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
)

// ScoreRepository stores per-subject score rows keyed by (student, term, session).
type ScoreRepository interface {
	// UpsertSubmission replaces every row matching key with rows.
	UpsertSubmission(ctx context.Context, key models.SubmissionKey, rows []models.ScoreRow) error

	// Find returns the student's rows. When term or session is unset the rows of
	// the most recently saved matching submission are returned.
	Find(ctx context.Context, studentName string, filters ScoreFilters) ([]models.ScoreRow, error)
	List(ctx context.Context, filters ScoreFilters) ([]models.ScoreRow, error)
	DistinctStudents(ctx context.Context) ([]string, error)
}
