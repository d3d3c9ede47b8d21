package repositories

import (
	"github.com/SAP-F-2025/reportcard-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// ScoreFilters narrows a score query. Nil fields match everything.
type ScoreFilters struct {
	StudentName *string      `json:"student_name"`
	Term        *models.Term `json:"term"`
	Session     *string      `json:"session"`
	Subject     *string      `json:"subject"`
}

// Matches reports whether the row passes every set filter.
func (f ScoreFilters) Matches(row *models.ScoreRow) bool {
	if f.StudentName != nil && row.StudentName != *f.StudentName {
		return false
	}
	if f.Term != nil && row.Term != *f.Term {
		return false
	}
	if f.Session != nil && row.Session != *f.Session {
		return false
	}
	if f.Subject != nil && row.Subject != *f.Subject {
		return false
	}
	return true
}

// ForPeriod builds filters for one term and session.
func ForPeriod(term models.Term, session string) ScoreFilters {
	return ScoreFilters{Term: &term, Session: &session}
}

// Repository groups the stores backing the service.
type Repository interface {
	Scores() ScoreRepository
	SchoolProfiles() SchoolProfileRepository
	Close() error
}
