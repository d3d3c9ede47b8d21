package csvstore

import (
	"path/filepath"

	"github.com/SAP-F-2025/reportcard-service/internal/repositories"
)

// Store is the file-backed repository: a progress file and a school profile file.
type Store struct {
	scores *ScoreStore
	school *SchoolStore
}

var _ repositories.Repository = (*Store)(nil)

// Open loads the progress file under dir. Relative file names are resolved against dir.
func Open(dir, progressFile, schoolFile string) (*Store, error) {
	scores, err := OpenScoreStore(resolve(dir, progressFile))
	if err != nil {
		return nil, err
	}
	return &Store{
		scores: scores,
		school: NewSchoolStore(resolve(dir, schoolFile)),
	}, nil
}

func resolve(dir, name string) string {
	if filepath.IsAbs(name) || dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

func (s *Store) Scores() repositories.ScoreRepository {
	return s.scores
}

func (s *Store) SchoolProfiles() repositories.SchoolProfileRepository {
	return s.school
}

// MissingColumns reports the back-filled columns of the loaded progress file.
func (s *Store) MissingColumns() []string {
	return s.scores.MissingColumns()
}

// Close is a no-op; every save is already on disk.
func (s *Store) Close() error {
	return nil
}
