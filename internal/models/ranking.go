package models

// OverallStanding is one line of the overall leaderboard for a term and session.
type OverallStanding struct {
	Position      string  `json:"position"`
	Rank          int     `json:"rank"`
	StudentName   string  `json:"student_name"`
	Class         string  `json:"class"`
	TotalObtained int     `json:"total_obtained"`
	TotalMax      int     `json:"total_max"`
	Percentage    float64 `json:"percentage"`
}

// SubjectStanding is one line of a single subject's leaderboard.
type SubjectStanding struct {
	Position      string  `json:"position"`
	Rank          int     `json:"rank"`
	StudentName   string  `json:"student_name"`
	Class         string  `json:"class"`
	TotalObtained int     `json:"total_obtained"`
	TotalMax      int     `json:"total_max"`
	Percentage    float64 `json:"percentage"`
}

// ProgressTable is the progress export: one line per (student, class, term,
// session) with the subject totals pivoted into columns.
type ProgressTable struct {
	Subjects []string      `json:"subjects"`
	Rows     []ProgressRow `json:"rows"`
}

type ProgressRow struct {
	StudentName string         `json:"student_name"`
	Class       string         `json:"class"`
	Term        Term           `json:"term"`
	Session     string         `json:"session"`
	Totals      map[string]int `json:"totals"`
}

// Header returns the exported column names.
func (t *ProgressTable) Header() []string {
	header := []string{"Student_Name", "Class", "Term", "Session"}
	return append(header, t.Subjects...)
}
