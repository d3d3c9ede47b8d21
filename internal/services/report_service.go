package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/reportcard-service/internal/events"
	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/report"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories"
)

type reportService struct {
	repo      repositories.Repository
	renderers map[report.Format]report.Renderer
	log       *ServiceLogger
	effects   sideEffects
}

// NewReportService renders report cards with the given renderers, keyed by
// their format. Without renderers the Excel and HTML renderers are used.
func NewReportService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, renderers ...report.Renderer) ReportService {
	if len(renderers) == 0 {
		renderers = []report.Renderer{report.NewExcelRenderer(), report.NewHTMLRenderer()}
	}

	byFormat := make(map[report.Format]report.Renderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Format()] = r
	}

	log := NewServiceLogger(logger, LogConfig{Service: "reportcard", Component: "reports"})
	return &reportService{
		repo:      repo,
		renderers: byFormat,
		log:       log,
		effects:   sideEffects{publisher: publisher, log: log},
	}
}

// GenerateReport renders the stored submission of (student, term, session).
// Stored totals are printed as saved; grades follow the current scale.
func (s *reportService) GenerateReport(ctx context.Context, student string, term models.Term, session string, format report.Format) (doc *report.Document, err error) {
	defer s.log.WithOperation(ctx, "generate_report", "report_card").LogResult(&err)

	student = strings.TrimSpace(student)
	if err := validatePeriod(term, session); err != nil {
		return nil, err
	}
	if student == "" {
		var errs ValidationErrors
		errs.Add("student_name", "is required", student)
		return nil, errs
	}
	if _, ok := s.renderers[format]; !ok {
		return nil, s.unsupported(format)
	}

	rows, err := s.repo.Scores().Find(ctx, student, repositories.ForPeriod(term, session))
	if err != nil {
		return nil, wrap("find submission", err)
	}
	if len(rows) == 0 {
		known, err := s.repo.Scores().Find(ctx, student, repositories.ScoreFilters{})
		if err != nil {
			return nil, wrap("find submission", err)
		}
		if len(known) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrStudentNotFound, student)
		}
		return nil, fmt.Errorf("%w: %s, %s %s", ErrNoRecords, student, term, session)
	}

	school, err := s.repo.SchoolProfiles().Get(ctx)
	if err != nil {
		return nil, wrap("get school profile", err)
	}

	return s.RenderCard(ctx, cardFromRows(rows, *school), format)
}

// RenderCard renders an already assembled card and announces the artifact.
func (s *reportService) RenderCard(ctx context.Context, card *models.ReportCard, format report.Format) (*report.Document, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, s.unsupported(format)
	}
	if card == nil {
		return nil, fmt.Errorf("%w: report card is required", ErrBadRequest)
	}

	doc, err := renderer.Render(ctx, card)
	if err != nil {
		return nil, wrap("render report card", err)
	}

	s.effects.publish(ctx, events.NewEvent(events.EventReportGenerated, events.ReportGeneratedEvent{
		StudentName: card.StudentName,
		Term:        card.Term,
		Session:     card.Session,
		FileName:    doc.FileName,
		Format:      string(format),
		Size:        len(doc.Data),
	}))

	return doc, nil
}

func (s *reportService) unsupported(format report.Format) error {
	supported := make([]string, 0, len(s.renderers))
	for _, f := range []report.Format{report.FormatXLSX, report.FormatHTML, report.FormatCSV} {
		if _, ok := s.renderers[f]; ok {
			supported = append(supported, string(f))
		}
	}
	return fmt.Errorf("%w: %q (expected %s)", ErrInvalidFormat, format, strings.Join(supported, " or "))
}

// cardFromRows builds a card from stored rows without recomputing their totals.
// A row without school identity falls back to the saved profile.
func cardFromRows(rows []models.ScoreRow, fallback models.SchoolProfile) *models.ReportCard {
	sub := models.SubmissionFromRows(rows)

	school := sub.School
	if school.Name == "" {
		school.Name = fallback.Name
	}
	if school.Address == "" {
		school.Address = fallback.Address
	}

	return &models.ReportCard{
		School:           school.WithDefaults(),
		StudentName:      sub.StudentName,
		Class:            sub.Class,
		NumberInClass:    sub.NumberInClass,
		Term:             sub.Term,
		Session:          sub.Session,
		Rows:             rows,
		Summary:          models.Summarize(rows),
		TeacherComment:   sub.TeacherComment,
		PrincipalComment: sub.PrincipalComment,
	}
}
