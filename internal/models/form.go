package models

import "time"

// FormSelection is the (student, term, session) choice driving a form session.
type FormSelection struct {
	StudentName string `json:"student_name" validate:"max=255"`
	Term        Term   `json:"term" validate:"required,term"`
	Session     string `json:"session" validate:"required,academic_session"`
}

func (s FormSelection) Key() SubmissionKey {
	return SubmissionKey{StudentName: s.StudentName, Term: s.Term, Session: s.Session}
}

// FormState is the in-progress data of one interactive entry session. It is
// reset whenever the selection key changes.
type FormState struct {
	ID               string                  `json:"id"`
	Selection        FormSelection           `json:"selection"`
	Class            string                  `json:"class"`
	NumberInClass    string                  `json:"number_in_class"`
	School           SchoolProfile           `json:"school"`
	CustomSubjects   string                  `json:"custom_subjects"`
	SavedSubjects    []string                `json:"saved_subjects"`
	Subjects         []string                `json:"subjects"`
	Scores           map[string]SubjectScore `json:"scores"`
	TeacherComment   string                  `json:"teacher_comment"`
	PrincipalComment string                  `json:"principal_comment"`
	Generation       int                     `json:"generation"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// ScoreFor returns the entered marks for a subject, or the defaults.
func (f *FormState) ScoreFor(subject string) SubjectScore {
	if score, ok := f.Scores[subject]; ok {
		score.Subject = subject
		return score
	}
	return DefaultSubjectScore(subject)
}

// Submission assembles the form into a submission covering every listed subject.
func (f *FormState) Submission() *StudentSubmission {
	sub := &StudentSubmission{
		StudentName:      f.Selection.StudentName,
		Class:            f.Class,
		NumberInClass:    f.NumberInClass,
		Term:             f.Selection.Term,
		Session:          f.Selection.Session,
		School:           f.School,
		TeacherComment:   f.TeacherComment,
		PrincipalComment: f.PrincipalComment,
		Subjects:         make([]SubjectScore, 0, len(f.Subjects)),
	}
	for _, subject := range f.Subjects {
		sub.Subjects = append(sub.Subjects, f.ScoreFor(subject))
	}
	return sub
}

// FormUpdate carries a partial edit of a form. Nil fields are left untouched.
type FormUpdate struct {
	Class            *string                 `json:"class" validate:"omitempty,max=100"`
	NumberInClass    *string                 `json:"number_in_class" validate:"omitempty,max=50"`
	SchoolName       *string                 `json:"school_name" validate:"omitempty,max=255"`
	SchoolAddress    *string                 `json:"school_address" validate:"omitempty,max=500"`
	CustomSubjects   *string                 `json:"custom_subjects" validate:"omitempty,max=1000"`
	Scores           map[string]SubjectScore `json:"scores"`
	TeacherComment   *string                 `json:"teacher_comment" validate:"omitempty,max=2000"`
	PrincipalComment *string                 `json:"principal_comment" validate:"omitempty,max=2000"`
}
