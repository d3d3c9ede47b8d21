package ranking

import (
	"fmt"
	"sort"

	"github.com/SAP-F-2025/reportcard-service/internal/grading"
	"github.com/SAP-F-2025/reportcard-service/internal/models"
)

// Ordinal formats a 1-based position as "1st", "2nd", "3rd", "4th", ...
// 11th to 13th (and every value from 11 to 19 modulo 100) take "th".
func Ordinal(n int) string {
	suffix := "th"
	if mod100 := n % 100; mod100 < 11 || mod100 > 19 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// Filter keeps the rows of the given term and session, in input order.
func Filter(rows []models.ScoreRow, term models.Term, session string) []models.ScoreRow {
	var out []models.ScoreRow
	for _, row := range rows {
		if row.Term == term && row.Session == session {
			out = append(out, row)
		}
	}
	return out
}

type studentKey struct {
	name  string
	class string
}

// OverallRanking ranks students by their percentage across all subjects taken
// in the term and session. Equal percentages keep first-seen order.
func OverallRanking(rows []models.ScoreRow, term models.Term, session string) []models.OverallStanding {
	filtered := Filter(rows, term, session)
	if len(filtered) == 0 {
		return []models.OverallStanding{}
	}

	index := make(map[studentKey]int)
	var standings []models.OverallStanding
	for _, row := range filtered {
		key := studentKey{name: row.StudentName, class: row.Class}
		i, ok := index[key]
		if !ok {
			i = len(standings)
			index[key] = i
			standings = append(standings, models.OverallStanding{
				StudentName: row.StudentName,
				Class:       row.Class,
			})
		}
		standings[i].TotalObtained += row.TotalObtained
		standings[i].TotalMax += row.TotalMax
	}

	for i := range standings {
		standings[i].Percentage = grading.Percentage(standings[i].TotalObtained, standings[i].TotalMax)
	}

	sort.SliceStable(standings, func(a, b int) bool {
		return standings[a].Percentage > standings[b].Percentage
	})

	for i := range standings {
		standings[i].Rank = i + 1
		standings[i].Position = Ordinal(i + 1)
	}

	return standings
}

// SubjectRanking ranks the rows of one subject by their own percentage.
func SubjectRanking(rows []models.ScoreRow, term models.Term, session, subject string) []models.SubjectStanding {
	standings := []models.SubjectStanding{}
	for _, row := range Filter(rows, term, session) {
		if row.Subject != subject {
			continue
		}
		standings = append(standings, models.SubjectStanding{
			StudentName:   row.StudentName,
			Class:         row.Class,
			TotalObtained: row.TotalObtained,
			TotalMax:      row.TotalMax,
			Percentage:    row.Percentage(),
		})
	}

	sort.SliceStable(standings, func(a, b int) bool {
		return standings[a].Percentage > standings[b].Percentage
	})

	for i := range standings {
		standings[i].Rank = i + 1
		standings[i].Position = Ordinal(i + 1)
	}

	return standings
}

// Subjects lists the distinct subjects recorded for a term and session, first seen first.
func Subjects(rows []models.ScoreRow, term models.Term, session string) []string {
	seen := make(map[string]struct{})
	subjects := []string{}
	for _, row := range Filter(rows, term, session) {
		if _, ok := seen[row.Subject]; ok {
			continue
		}
		seen[row.Subject] = struct{}{}
		subjects = append(subjects, row.Subject)
	}
	return subjects
}
