package models

import (
	"time"

	"github.com/SAP-F-2025/reportcard-service/internal/grading"
)

type Term string

const (
	TermFirst  Term = "First Term"
	TermSecond Term = "Second Term"
	TermThird  Term = "Third Term"
)

// Terms lists the academic terms in calendar order.
var Terms = []Term{TermFirst, TermSecond, TermThird}

func (t Term) IsValid() bool {
	switch t {
	case TermFirst, TermSecond, TermThird:
		return true
	}
	return false
}

// Default obtainable marks offered for a new subject.
const (
	DefaultCA1Max  = 20
	DefaultCA2Max  = 20
	DefaultExamMax = 60
)

// ScoreRow is one subject's marks for one student in one term and session.
// School identity and comments are denormalized onto every row of a submission.
type ScoreRow struct {
	ID            uint   `json:"-" gorm:"primaryKey"`
	StudentName   string `json:"student_name" gorm:"not null;size:255;index:idx_score_rows_key,priority:1"`
	Class         string `json:"class" gorm:"size:100"`
	NumberInClass string `json:"number_in_class" gorm:"size:50"`
	Term          Term   `json:"term" gorm:"not null;size:20;index:idx_score_rows_key,priority:2"`
	Session       string `json:"session" gorm:"not null;size:9;index:idx_score_rows_key,priority:3"`
	Subject       string `json:"subject" gorm:"not null;size:100"`

	CA1Obtained  int `json:"ca1_obtained"`
	CA1Max       int `json:"ca1_max"`
	CA2Obtained  int `json:"ca2_obtained"`
	CA2Max       int `json:"ca2_max"`
	ExamObtained int `json:"exam_obtained"`
	ExamMax      int `json:"exam_max"`

	// Derived
	TotalObtained int            `json:"total_obtained"`
	TotalMax      int            `json:"total_max"`
	Grade         grading.Letter `json:"grade" gorm:"size:2"`
	Remark        grading.Remark `json:"remark" gorm:"size:20"`

	TeacherComment   string `json:"teacher_comment" gorm:"type:text"`
	PrincipalComment string `json:"principal_comment" gorm:"type:text"`
	SchoolName       string `json:"school_name" gorm:"size:255"`
	SchoolAddress    string `json:"school_address" gorm:"size:500"`

	CreatedAt time.Time `json:"-"`
}

func (ScoreRow) TableName() string {
	return "score_rows"
}

// Key returns the submission key the row belongs to.
func (r ScoreRow) Key() SubmissionKey {
	return SubmissionKey{StudentName: r.StudentName, Term: r.Term, Session: r.Session}
}

// Derive recomputes totals from the components, then grade and remark from the totals.
func (r *ScoreRow) Derive() {
	r.TotalObtained = r.CA1Obtained + r.CA2Obtained + r.ExamObtained
	r.TotalMax = r.CA1Max + r.CA2Max + r.ExamMax
	r.Regrade()
}

// Regrade recomputes grade and remark from the stored totals only.
func (r *ScoreRow) Regrade() {
	r.Grade, r.Remark = grading.Grade(r.TotalObtained, r.TotalMax)
}

func (r ScoreRow) Percentage() float64 {
	return grading.Percentage(r.TotalObtained, r.TotalMax)
}

// Scores returns the row's components in report order: 1st CA, 2nd CA, Exam, Total.
func (r ScoreRow) Scores() []ScorePair {
	return []ScorePair{
		{Obtained: r.CA1Obtained, Max: r.CA1Max},
		{Obtained: r.CA2Obtained, Max: r.CA2Max},
		{Obtained: r.ExamObtained, Max: r.ExamMax},
		{Obtained: r.TotalObtained, Max: r.TotalMax},
	}
}

// SubmissionKey identifies one student's submission for a term and session.
type SubmissionKey struct {
	StudentName string `json:"student_name"`
	Term        Term   `json:"term"`
	Session     string `json:"session"`
}

func (k SubmissionKey) Matches(r ScoreRow) bool {
	return r.StudentName == k.StudentName && r.Term == k.Term && r.Session == k.Session
}

func (k SubmissionKey) IsZero() bool {
	return k.StudentName == "" && k.Term == "" && k.Session == ""
}

// ScorePair is an obtained mark and the mark obtainable for one component.
type ScorePair struct {
	Obtained int `json:"obtained" validate:"min=0"`
	Max      int `json:"max" validate:"min=1"`
}

// IsLow reports whether the pair should be highlighted on a report.
func (p ScorePair) IsLow() bool {
	return grading.IsLow(p.Obtained, p.Max)
}
