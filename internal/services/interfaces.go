package services

import (
	"context"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/report"
)

// ===== SERVICE INTERFACES =====

type RecordService interface {
	SaveSubmission(ctx context.Context, sub *models.StudentSubmission) (*SubmissionRecord, error)
	GetSubmission(ctx context.Context, student string, term *models.Term, session *string) (*SubmissionRecord, error)
	ListStudents(ctx context.Context) ([]string, error)
	Options(ctx context.Context) (*FormOptions, error)

	GetSchoolProfile(ctx context.Context) (*models.SchoolProfile, error)
	UpdateSchoolProfile(ctx context.Context, profile *models.SchoolProfile) (*models.SchoolProfile, error)
}

type RankingService interface {
	OverallRanking(ctx context.Context, term models.Term, session string) ([]models.OverallStanding, error)
	SubjectRanking(ctx context.Context, term models.Term, session, subject string) ([]models.SubjectStanding, error)
	Subjects(ctx context.Context, term models.Term, session string) ([]string, error)
}

type ExportService interface {
	ExportProgress(ctx context.Context, filter ExportFilter, format report.Format) (*report.Document, error)
	ExportOverallRanking(ctx context.Context, term models.Term, session string, format report.Format) (*report.Document, error)
}

type ReportService interface {
	GenerateReport(ctx context.Context, student string, term models.Term, session string, format report.Format) (*report.Document, error)
	RenderCard(ctx context.Context, card *models.ReportCard, format report.Format) (*report.Document, error)
}

// FormService keeps the state of interactive entry sessions between requests.
type FormService interface {
	Open(ctx context.Context, selection models.FormSelection) (*models.FormState, error)
	Get(ctx context.Context, id string) (*models.FormState, error)
	Select(ctx context.Context, id string, selection models.FormSelection) (*models.FormState, error)
	Update(ctx context.Context, id string, update *models.FormUpdate) (*models.FormState, error)
	Preview(ctx context.Context, id string) (*models.ReportCard, error)
	Save(ctx context.Context, id string) (*models.FormState, *SubmissionRecord, error)
	Report(ctx context.Context, id string, format report.Format) (*report.Document, error)
	Close(ctx context.Context, id string) error
}

// ===== REQUEST / RESPONSE TYPES =====

// SubmissionRecord is a stored submission together with its derived rows.
type SubmissionRecord struct {
	Key        models.SubmissionKey      `json:"key"`
	Submission *models.StudentSubmission `json:"submission"`
	Rows       []models.ScoreRow         `json:"rows"`
	Summary    models.Summary            `json:"summary"`
}

func newSubmissionRecord(sub *models.StudentSubmission, rows []models.ScoreRow) *SubmissionRecord {
	return &SubmissionRecord{
		Key:        sub.Key(),
		Submission: sub,
		Rows:       rows,
		Summary:    models.Summarize(rows),
	}
}

// ExportAll disables a filter dimension of the progress export.
const ExportAll = "All"

// ExportFilter restricts the progress export. Empty or "All" matches everything.
type ExportFilter struct {
	Term    string `form:"term" json:"term"`
	Session string `form:"session" json:"session"`
}

// FormOptions lists the choices offered by the entry form.
type FormOptions struct {
	Terms        []models.Term        `json:"terms"`
	Sessions     []string             `json:"sessions"`
	Students     []string             `json:"students"`
	BaseSubjects []string             `json:"base_subjects"`
	Defaults     models.SubjectScore  `json:"defaults"`
	School       models.SchoolProfile `json:"school"`
}
