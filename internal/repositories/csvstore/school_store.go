package csvstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories"
)

var schoolColumns = []string{ColSchoolName, ColSchoolAddress}

// SchoolStore keeps the school profile as a single-row file.
type SchoolStore struct {
	path string
	mu   sync.Mutex
}

var _ repositories.SchoolProfileRepository = (*SchoolStore)(nil)

func NewSchoolStore(path string) *SchoolStore {
	return &SchoolStore{path: path}
}

// Get reads the profile. Blank or missing values fall back to the defaults.
func (s *SchoolStore) Get(ctx context.Context) (*models.SchoolProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	header, records, err := readRecords(s.path)
	if err != nil {
		return nil, err
	}

	profile := models.SchoolProfile{}
	if header != nil && len(records) > 0 {
		sc := newSchema(header)
		profile.Name = sc.text(records[0], ColSchoolName)
		profile.Address = sc.text(records[0], ColSchoolAddress)
	}
	profile = profile.WithDefaults()
	return &profile, nil
}

// Save overwrites the file with the given profile.
func (s *SchoolStore) Save(ctx context.Context, profile *models.SchoolProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := []string{profile.Name, profile.Address}
	if err := writeRecords(s.path, schoolColumns, [][]string{record}); err != nil {
		return fmt.Errorf("save school profile: %w", err)
	}
	profile.UpdatedAt = time.Now()
	return nil
}
