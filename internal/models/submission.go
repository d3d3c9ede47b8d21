package models

import (
	"strings"

	"github.com/SAP-F-2025/reportcard-service/internal/grading"
)

// BaseSubjects are offered on every submission before any additions.
var BaseSubjects = []string{"Mathematics", "English"}

type SubjectScore struct {
	Subject string    `json:"subject" validate:"required,max=100"`
	CA1     ScorePair `json:"ca1"`
	CA2     ScorePair `json:"ca2"`
	Exam    ScorePair `json:"exam"`
}

// DefaultSubjectScore returns the blank entry offered for a subject with no saved marks.
func DefaultSubjectScore(subject string) SubjectScore {
	return SubjectScore{
		Subject: subject,
		CA1:     ScorePair{Max: DefaultCA1Max},
		CA2:     ScorePair{Max: DefaultCA2Max},
		Exam:    ScorePair{Max: DefaultExamMax},
	}
}

// StudentSubmission is the set of subject marks for one student in one term and
// session together with the fields shared by all of its rows.
type StudentSubmission struct {
	StudentName      string         `json:"student_name" validate:"required,max=255"`
	Class            string         `json:"class" validate:"max=100"`
	NumberInClass    string         `json:"number_in_class" validate:"max=50"`
	Term             Term           `json:"term" validate:"required,term"`
	Session          string         `json:"session" validate:"required,academic_session"`
	School           SchoolProfile  `json:"school"`
	Subjects         []SubjectScore `json:"subjects" validate:"required,min=1,dive"`
	TeacherComment   string         `json:"teacher_comment" validate:"max=2000"`
	PrincipalComment string         `json:"principal_comment" validate:"max=2000"`
}

func (s *StudentSubmission) Key() SubmissionKey {
	return SubmissionKey{StudentName: s.StudentName, Term: s.Term, Session: s.Session}
}

// Rows flattens the submission into fully derived score rows, one per subject.
func (s *StudentSubmission) Rows() []ScoreRow {
	rows := make([]ScoreRow, 0, len(s.Subjects))
	for _, subject := range s.Subjects {
		row := ScoreRow{
			StudentName:      s.StudentName,
			Class:            s.Class,
			NumberInClass:    s.NumberInClass,
			Term:             s.Term,
			Session:          s.Session,
			Subject:          subject.Subject,
			CA1Obtained:      subject.CA1.Obtained,
			CA1Max:           subject.CA1.Max,
			CA2Obtained:      subject.CA2.Obtained,
			CA2Max:           subject.CA2.Max,
			ExamObtained:     subject.Exam.Obtained,
			ExamMax:          subject.Exam.Max,
			TeacherComment:   s.TeacherComment,
			PrincipalComment: s.PrincipalComment,
			SchoolName:       s.School.Name,
			SchoolAddress:    s.School.Address,
		}
		row.Derive()
		rows = append(rows, row)
	}
	return rows
}

// SubmissionFromRows rebuilds a submission from stored rows. Shared fields are
// taken from the first row.
func SubmissionFromRows(rows []ScoreRow) *StudentSubmission {
	if len(rows) == 0 {
		return nil
	}

	first := rows[0]
	sub := &StudentSubmission{
		StudentName:      first.StudentName,
		Class:            first.Class,
		NumberInClass:    first.NumberInClass,
		Term:             first.Term,
		Session:          first.Session,
		School:           SchoolProfile{Name: first.SchoolName, Address: first.SchoolAddress},
		TeacherComment:   first.TeacherComment,
		PrincipalComment: first.PrincipalComment,
		Subjects:         make([]SubjectScore, 0, len(rows)),
	}

	for _, row := range rows {
		sub.Subjects = append(sub.Subjects, SubjectScore{
			Subject: row.Subject,
			CA1:     ScorePair{Obtained: row.CA1Obtained, Max: row.CA1Max},
			CA2:     ScorePair{Obtained: row.CA2Obtained, Max: row.CA2Max},
			Exam:    ScorePair{Obtained: row.ExamObtained, Max: row.ExamMax},
		})
	}

	return sub
}

// Summary holds the aggregate figures printed under the subject table.
type Summary struct {
	TotalObtained int     `json:"total_obtained"`
	TotalMax      int     `json:"total_max"`
	Average       float64 `json:"average"`
	Percentage    float64 `json:"percentage"`
}

// Summarize totals the rows. Average is the mean subject total obtained.
func Summarize(rows []ScoreRow) Summary {
	var summary Summary
	for _, row := range rows {
		summary.TotalObtained += row.TotalObtained
		summary.TotalMax += row.TotalMax
	}
	if len(rows) > 0 {
		summary.Average = float64(summary.TotalObtained) / float64(len(rows))
	}
	summary.Percentage = grading.Percentage(summary.TotalObtained, summary.TotalMax)
	return summary
}

// SubjectList is an ordered set of subject names. Names are trimmed and
// compared case-insensitively; the first spelling wins.
type SubjectList struct {
	items []string
	seen  map[string]struct{}
}

func NewSubjectList(subjects ...string) *SubjectList {
	list := &SubjectList{seen: make(map[string]struct{})}
	for _, s := range subjects {
		list.Add(s)
	}
	return list
}

// Add appends the subject unless it is blank or already present.
func (l *SubjectList) Add(subject string) bool {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return false
	}
	key := strings.ToLower(subject)
	if _, ok := l.seen[key]; ok {
		return false
	}
	l.seen[key] = struct{}{}
	l.items = append(l.items, subject)
	return true
}

// AddCSV adds every entry of a comma-separated list and returns how many were new.
func (l *SubjectList) AddCSV(text string) int {
	added := 0
	for _, part := range strings.Split(text, ",") {
		if l.Add(part) {
			added++
		}
	}
	return added
}

func (l *SubjectList) Contains(subject string) bool {
	_, ok := l.seen[strings.ToLower(strings.TrimSpace(subject))]
	return ok
}

func (l *SubjectList) Len() int {
	return len(l.items)
}

func (l *SubjectList) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// ResolveSubjects builds the subject list for a form: the base subjects, then
// custom additions; saved subjects are appended only when no custom text was given.
func ResolveSubjects(custom string, saved []string) []string {
	list := NewSubjectList(BaseSubjects...)
	if strings.TrimSpace(custom) != "" {
		list.AddCSV(custom)
	} else {
		for _, s := range saved {
			list.Add(s)
		}
	}
	return list.Items()
}
