package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/reportcard-service/internal/cache"
	"github.com/SAP-F-2025/reportcard-service/internal/events"
	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories"
	"github.com/SAP-F-2025/reportcard-service/internal/validator"
)

type recordService struct {
	repo      repositories.Repository
	validator *validator.Validator
	log       *ServiceLogger
	effects   sideEffects
}

func NewRecordService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	validator *validator.Validator,
	logger *slog.Logger,
) RecordService {
	log := NewServiceLogger(logger, LogConfig{Service: "reportcard", Component: "records"})
	return &recordService{
		repo:      repo,
		validator: validator,
		log:       log,
		effects:   sideEffects{cache: cacheService, publisher: publisher, log: log},
	}
}

// SaveSubmission validates the submission, derives its rows and replaces the
// stored submission with the same (student, term, session).
func (s *recordService) SaveSubmission(ctx context.Context, sub *models.StudentSubmission) (record *SubmissionRecord, err error) {
	defer s.log.WithOperation(ctx, "save_submission", "submission").LogResult(&err)

	if sub == nil {
		return nil, fmt.Errorf("%w: submission is required", ErrBadRequest)
	}

	normalizeSubmission(sub)
	sub.School = sub.School.WithDefaults()

	if err := s.validator.ValidateStruct(sub); err != nil {
		return nil, toValidationErrors(err)
	}
	if errs := s.validator.ValidateBusiness(sub); errs.HasErrors() {
		return nil, errs
	}

	rows := sub.Rows()

	school := sub.School
	if err := s.repo.SchoolProfiles().Save(ctx, &school); err != nil {
		return nil, wrap("save school profile", err)
	}
	if err := s.repo.Scores().UpsertSubmission(ctx, sub.Key(), rows); err != nil {
		return nil, wrap("save submission", err)
	}

	s.effects.invalidateRankings(ctx)
	s.effects.publish(ctx, events.NewSubmissionSavedEvent(sub, rows))

	return newSubmissionRecord(sub, rows), nil
}

// GetSubmission returns the stored submission of a student. An open term or
// session selects the student's most recently saved submission.
func (s *recordService) GetSubmission(ctx context.Context, student string, term *models.Term, session *string) (record *SubmissionRecord, err error) {
	defer s.log.WithOperation(ctx, "get_submission", "submission").LogResult(&err)

	student = strings.TrimSpace(student)
	if student == "" {
		var errs ValidationErrors
		errs.Add("student_name", "is required", student)
		return nil, errs
	}
	if term != nil && !term.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTerm, *term)
	}
	if session != nil && !validator.IsAcademicSession(*session) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSession, *session)
	}

	rows, err := s.repo.Scores().Find(ctx, student, repositories.ScoreFilters{Term: term, Session: session})
	if err != nil {
		return nil, wrap("find submission", err)
	}
	if len(rows) == 0 {
		return nil, s.missing(ctx, student)
	}

	return newSubmissionRecord(models.SubmissionFromRows(rows), rows), nil
}

// missing tells an unknown student apart from a known one without rows in the period.
func (s *recordService) missing(ctx context.Context, student string) error {
	all, err := s.repo.Scores().Find(ctx, student, repositories.ScoreFilters{})
	if err != nil {
		return wrap("find submission", err)
	}
	if len(all) == 0 {
		return fmt.Errorf("%w: %s", ErrStudentNotFound, student)
	}
	return fmt.Errorf("%w: %s", ErrNoRecords, student)
}

func (s *recordService) ListStudents(ctx context.Context) ([]string, error) {
	students, err := s.repo.Scores().DistinctStudents(ctx)
	if err != nil {
		return nil, wrap("list students", err)
	}
	return students, nil
}

// Options lists what the entry form offers: terms, sessions, known students,
// base subjects, default obtainable marks and the saved school profile.
func (s *recordService) Options(ctx context.Context) (*FormOptions, error) {
	students, err := s.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	school, err := s.GetSchoolProfile(ctx)
	if err != nil {
		return nil, err
	}

	return &FormOptions{
		Terms:        append([]models.Term(nil), models.Terms...),
		Sessions:     models.AcademicSessions(),
		Students:     students,
		BaseSubjects: append([]string(nil), models.BaseSubjects...),
		Defaults:     models.DefaultSubjectScore(""),
		School:       *school,
	}, nil
}

func (s *recordService) GetSchoolProfile(ctx context.Context) (*models.SchoolProfile, error) {
	profile, err := s.repo.SchoolProfiles().Get(ctx)
	if err != nil {
		return nil, wrap("get school profile", err)
	}
	defaulted := profile.WithDefaults()
	return &defaulted, nil
}

func (s *recordService) UpdateSchoolProfile(ctx context.Context, profile *models.SchoolProfile) (saved *models.SchoolProfile, err error) {
	defer s.log.WithOperation(ctx, "update_school_profile", "school_profile").LogResult(&err)

	if profile == nil {
		return nil, fmt.Errorf("%w: school profile is required", ErrBadRequest)
	}

	next := models.SchoolProfile{
		Name:    strings.TrimSpace(profile.Name),
		Address: strings.TrimSpace(profile.Address),
	}
	if err := s.validator.Validate(&next); err != nil {
		return nil, toValidationErrors(err)
	}
	next = next.WithDefaults()

	if err := s.repo.SchoolProfiles().Save(ctx, &next); err != nil {
		return nil, wrap("save school profile", err)
	}

	s.effects.publish(ctx, events.NewEvent(events.EventSchoolProfileUpdated, events.SchoolProfileUpdatedEvent{
		Name:    next.Name,
		Address: next.Address,
	}))

	return &next, nil
}
