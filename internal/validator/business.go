package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
)

// BusinessValidator checks the rules struct tags cannot express.
type BusinessValidator struct{}

func NewBusinessValidator() *BusinessValidator {
	return &BusinessValidator{}
}

// Validate dispatches on the value's type. Types without business rules pass.
func (b *BusinessValidator) Validate(s interface{}) ValidationErrors {
	switch v := s.(type) {
	case *models.StudentSubmission:
		return b.ValidateSubmission(v)
	case models.StudentSubmission:
		return b.ValidateSubmission(&v)
	case *models.SchoolProfile:
		return b.ValidateSchoolProfile(v)
	}
	return nil
}

// ValidateSubmission requires a named student, at least one subject, distinct
// subject names and an obtainable mark of at least 1 on every component.
// Obtained marks above the obtainable mark are accepted.
func (b *BusinessValidator) ValidateSubmission(sub *models.StudentSubmission) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(sub.StudentName) == "" {
		errs.Add("student_name", "is required", sub.StudentName)
	}
	if len(sub.Subjects) == 0 {
		errs.Add("subjects", "must contain at least one subject", nil)
	}

	seen := models.NewSubjectList()
	for i, subject := range sub.Subjects {
		field := fmt.Sprintf("subjects[%d]", i)
		if strings.TrimSpace(subject.Subject) == "" {
			errs.Add(field+".subject", "is required", subject.Subject)
			continue
		}
		if !seen.Add(subject.Subject) {
			errs.Add(field+".subject", "must not repeat a subject already listed", subject.Subject)
		}

		components := []struct {
			name string
			pair models.ScorePair
		}{
			{"ca1", subject.CA1},
			{"ca2", subject.CA2},
			{"exam", subject.Exam},
		}
		for _, c := range components {
			if c.pair.Max < 1 {
				errs.Add(field+"."+c.name+".max", "must be at least 1", c.pair.Max)
			}
			if c.pair.Obtained < 0 {
				errs.Add(field+"."+c.name+".obtained", "must be at least 0", c.pair.Obtained)
			}
		}
	}

	return errs
}

func (b *BusinessValidator) ValidateSchoolProfile(profile *models.SchoolProfile) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(profile.Name) == "" {
		errs.Add("name", "is required", profile.Name)
	}
	return errs
}
