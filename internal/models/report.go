package models

import "fmt"

// ReportCard is the fully resolved input of a report renderer.
type ReportCard struct {
	School           SchoolProfile `json:"school"`
	StudentName      string        `json:"student_name"`
	Class            string        `json:"class"`
	NumberInClass    string        `json:"number_in_class"`
	Term             Term          `json:"term"`
	Session          string        `json:"session"`
	Rows             []ScoreRow    `json:"rows"`
	Summary          Summary       `json:"summary"`
	TeacherComment   string        `json:"teacher_comment"`
	PrincipalComment string        `json:"principal_comment"`
}

// NewReportCard derives rows and summary from the submission.
func NewReportCard(sub *StudentSubmission) *ReportCard {
	rows := sub.Rows()
	return &ReportCard{
		School:           sub.School,
		StudentName:      sub.StudentName,
		Class:            sub.Class,
		NumberInClass:    sub.NumberInClass,
		Term:             sub.Term,
		Session:          sub.Session,
		Rows:             rows,
		Summary:          Summarize(rows),
		TeacherComment:   sub.TeacherComment,
		PrincipalComment: sub.PrincipalComment,
	}
}

func (c *ReportCard) Title() string {
	return fmt.Sprintf("%s %s Academic Report Card", c.Term, c.Session)
}
