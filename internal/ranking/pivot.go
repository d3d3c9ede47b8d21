package ranking

import (
	"sort"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
)

type pivotKey struct {
	student string
	class   string
	term    models.Term
	session string
}

// Pivot builds the progress table: one line per (student, class, term,
// session), one column per subject holding the first total obtained seen.
// Lines and subject columns are sorted; missing cells read as 0.
func Pivot(rows []models.ScoreRow) *models.ProgressTable {
	table := &models.ProgressTable{Subjects: []string{}, Rows: []models.ProgressRow{}}

	lines := make(map[pivotKey]*models.ProgressRow)
	subjects := make(map[string]struct{})
	for _, row := range rows {
		key := pivotKey{student: row.StudentName, class: row.Class, term: row.Term, session: row.Session}
		line, ok := lines[key]
		if !ok {
			line = &models.ProgressRow{
				StudentName: row.StudentName,
				Class:       row.Class,
				Term:        row.Term,
				Session:     row.Session,
				Totals:      make(map[string]int),
			}
			lines[key] = line
		}
		if _, exists := line.Totals[row.Subject]; !exists {
			line.Totals[row.Subject] = row.TotalObtained
		}
		subjects[row.Subject] = struct{}{}
	}

	for subject := range subjects {
		table.Subjects = append(table.Subjects, subject)
	}
	sort.Strings(table.Subjects)

	for _, line := range lines {
		for _, subject := range table.Subjects {
			if _, ok := line.Totals[subject]; !ok {
				line.Totals[subject] = 0
			}
		}
		table.Rows = append(table.Rows, *line)
	}

	sort.Slice(table.Rows, func(a, b int) bool {
		ra, rb := table.Rows[a], table.Rows[b]
		if ra.StudentName != rb.StudentName {
			return ra.StudentName < rb.StudentName
		}
		if ra.Class != rb.Class {
			return ra.Class < rb.Class
		}
		if ra.Term != rb.Term {
			return ra.Term < rb.Term
		}
		return ra.Session < rb.Session
	})

	return table
}
