package csvstore

import (
	"math"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/reportcard-service/internal/grading"
	"github.com/SAP-F-2025/reportcard-service/internal/models"
)

// Storage column names, in write order.
const (
	ColStudentName      = "Student_Name"
	ColClass            = "Class"
	ColTerm             = "Term"
	ColSession          = "Session"
	ColSubject          = "Subject"
	ColCA1Obtained      = "CA1_Obt"
	ColCA1Max           = "CA1_Max"
	ColCA2Obtained      = "CA2_Obt"
	ColCA2Max           = "CA2_Max"
	ColExamObtained     = "Exam_Obt"
	ColExamMax          = "Exam_Max"
	ColTotalObtained    = "Total_Obt"
	ColTotalMax         = "Total_Max"
	ColGrade            = "Grade"
	ColRemark           = "Remark"
	ColTeacherComment   = "Teacher_Comment"
	ColPrincipalComment = "Principal_Comment"
	ColSchoolName       = "School_Name"
	ColSchoolAddress    = "School_Address"
	ColNumber           = "Number"
)

// ScoreColumns is the header written to the progress file.
var ScoreColumns = []string{
	ColStudentName, ColClass, ColTerm, ColSession, ColSubject,
	ColCA1Obtained, ColCA1Max, ColCA2Obtained, ColCA2Max, ColExamObtained, ColExamMax,
	ColTotalObtained, ColTotalMax, ColGrade, ColRemark,
	ColTeacherComment, ColPrincipalComment, ColSchoolName, ColSchoolAddress, ColNumber,
}

// schema maps known column names to their position in a loaded file. Columns
// absent from the file have no entry and read as empty.
type schema map[string]int

func newSchema(header []string) schema {
	s := make(schema, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := s[name]; !dup {
			s[name] = i
		}
	}
	return s
}

// Missing lists the known columns the file lacks.
func (s schema) Missing() []string {
	var missing []string
	for _, col := range ScoreColumns {
		if _, ok := s[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

func (s schema) text(record []string, col string) string {
	i, ok := s[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (s schema) number(record []string, col string) int {
	return parseInt(s.text(record, col))
}

// hasTotals reports whether the file stores both total columns.
func (s schema) hasTotals() bool {
	_, hasObt := s[ColTotalObtained]
	_, hasMax := s[ColTotalMax]
	return hasObt && hasMax
}

// decode builds a row from a record. Grade and remark are recomputed from the
// stored totals so every loaded row follows the current scale. Files without
// total columns get totals summed from the components.
func (s schema) decode(record []string) models.ScoreRow {
	row := models.ScoreRow{
		StudentName:      s.text(record, ColStudentName),
		Class:            s.text(record, ColClass),
		NumberInClass:    s.text(record, ColNumber),
		Term:             models.Term(s.text(record, ColTerm)),
		Session:          s.text(record, ColSession),
		Subject:          s.text(record, ColSubject),
		CA1Obtained:      s.number(record, ColCA1Obtained),
		CA1Max:           s.number(record, ColCA1Max),
		CA2Obtained:      s.number(record, ColCA2Obtained),
		CA2Max:           s.number(record, ColCA2Max),
		ExamObtained:     s.number(record, ColExamObtained),
		ExamMax:          s.number(record, ColExamMax),
		TotalObtained:    s.number(record, ColTotalObtained),
		TotalMax:         s.number(record, ColTotalMax),
		TeacherComment:   s.text(record, ColTeacherComment),
		PrincipalComment: s.text(record, ColPrincipalComment),
		SchoolName:       s.text(record, ColSchoolName),
		SchoolAddress:    s.text(record, ColSchoolAddress),
	}
	if s.hasTotals() {
		row.Regrade()
	} else {
		row.Derive()
	}
	return row
}

func encode(row *models.ScoreRow) []string {
	grade, remark := row.Grade, row.Remark
	if grade == "" {
		grade, remark = grading.Grade(row.TotalObtained, row.TotalMax)
	}
	return []string{
		row.StudentName,
		row.Class,
		string(row.Term),
		row.Session,
		row.Subject,
		strconv.Itoa(row.CA1Obtained),
		strconv.Itoa(row.CA1Max),
		strconv.Itoa(row.CA2Obtained),
		strconv.Itoa(row.CA2Max),
		strconv.Itoa(row.ExamObtained),
		strconv.Itoa(row.ExamMax),
		strconv.Itoa(row.TotalObtained),
		strconv.Itoa(row.TotalMax),
		string(grade),
		string(remark),
		row.TeacherComment,
		row.PrincipalComment,
		row.SchoolName,
		row.SchoolAddress,
		row.NumberInClass,
	}
}

// parseInt accepts "18" and spreadsheet-style "18.0". Blank or unreadable cells read as 0.
func parseInt(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Round(f))
}
