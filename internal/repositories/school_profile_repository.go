package repositories

import (
	"context"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
)

// SchoolProfileRepository holds the single school profile row.
type SchoolProfileRepository interface {
	// Get returns the stored profile, or the default profile when none was saved.
	Get(ctx context.Context) (*models.SchoolProfile, error)
	Save(ctx context.Context, profile *models.SchoolProfile) error
}
