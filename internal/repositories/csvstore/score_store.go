package csvstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories"
)

// ScoreStore keeps the whole progress file in memory and rewrites it on every save.
type ScoreStore struct {
	path string

	mu      sync.RWMutex
	rows    []models.ScoreRow
	missing []string
}

var _ repositories.ScoreRepository = (*ScoreStore)(nil)

// OpenScoreStore loads path. A missing file opens an empty store.
func OpenScoreStore(path string) (*ScoreStore, error) {
	s := &ScoreStore{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory table with the file contents.
func (s *ScoreStore) Reload() error {
	rows, missing, err := LoadScoreRows(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.rows = rows
	s.missing = missing
	s.mu.Unlock()
	return nil
}

// LoadScoreRows reads a progress file. Known columns absent from the header are
// returned in missing and read as empty on every row.
func LoadScoreRows(path string) (rows []models.ScoreRow, missing []string, err error) {
	header, records, err := readRecords(path)
	if err != nil {
		return nil, nil, err
	}
	if header == nil {
		return []models.ScoreRow{}, nil, nil
	}

	sc := newSchema(header)
	rows = make([]models.ScoreRow, 0, len(records))
	for _, record := range records {
		if isBlank(record) {
			continue
		}
		rows = append(rows, sc.decode(record))
	}
	return rows, sc.Missing(), nil
}

// WriteScoreRows rewrites path with rows under the full column set.
func WriteScoreRows(path string, rows []models.ScoreRow) error {
	records := make([][]string, 0, len(rows))
	for i := range rows {
		records = append(records, encode(&rows[i]))
	}
	return writeRecords(path, ScoreColumns, records)
}

func isBlank(record []string) bool {
	for _, field := range record {
		if field != "" {
			return false
		}
	}
	return true
}

// MissingColumns lists the known columns the file lacked when last loaded.
func (s *ScoreStore) MissingColumns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.missing...)
}

func (s *ScoreStore) UpsertSubmission(ctx context.Context, key models.SubmissionKey, rows []models.ScoreRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key.IsZero() {
		return fmt.Errorf("upsert submission: empty key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.ScoreRow, 0, len(s.rows)+len(rows))
	for _, row := range s.rows {
		if !key.Matches(row) {
			next = append(next, row)
		}
	}
	for _, row := range rows {
		row.StudentName, row.Term, row.Session = key.StudentName, key.Term, key.Session
		next = append(next, row)
	}

	// s.rows only changes once the file is replaced.
	if err := WriteScoreRows(s.path, next); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	s.rows = next
	return nil
}

func (s *ScoreStore) Find(ctx context.Context, studentName string, filters repositories.ScoreFilters) ([]models.ScoreRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	filters.StudentName = &studentName
	return findLatest(s.rows, filters), nil
}

// findLatest returns the rows of the last matching submission when the filters
// leave term or session open, or every matching row otherwise.
func findLatest(rows []models.ScoreRow, filters repositories.ScoreFilters) []models.ScoreRow {
	exact := filters.Term != nil && filters.Session != nil

	var (
		latest models.SubmissionKey
		found  bool
	)
	if !exact {
		for i := len(rows) - 1; i >= 0; i-- {
			if filters.Matches(&rows[i]) {
				latest, found = rows[i].Key(), true
				break
			}
		}
		if !found {
			return []models.ScoreRow{}
		}
	}

	out := []models.ScoreRow{}
	for i := range rows {
		if !filters.Matches(&rows[i]) {
			continue
		}
		if !exact && !latest.Matches(rows[i]) {
			continue
		}
		out = append(out, rows[i])
	}
	return out
}

func (s *ScoreStore) List(ctx context.Context, filters repositories.ScoreFilters) ([]models.ScoreRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ScoreRow, 0, len(s.rows))
	for i := range s.rows {
		if filters.Matches(&s.rows[i]) {
			out = append(out, s.rows[i])
		}
	}
	return out, nil
}

// DistinctStudents lists student names in first-seen order.
func (s *ScoreStore) DistinctStudents(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	names := []string{}
	for _, row := range s.rows {
		if row.StudentName == "" {
			continue
		}
		if _, ok := seen[row.StudentName]; ok {
			continue
		}
		seen[row.StudentName] = struct{}{}
		names = append(names, row.StudentName)
	}
	return names, nil
}
