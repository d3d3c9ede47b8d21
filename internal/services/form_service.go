package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SAP-F-2025/reportcard-service/internal/cache"
	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/report"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories"
	"github.com/SAP-F-2025/reportcard-service/internal/validator"
	"github.com/google/uuid"
)

type formService struct {
	repo      repositories.Repository
	records   RecordService
	reports   ReportService
	cache     cache.CacheService
	ttl       time.Duration
	validator *validator.Validator
	log       *ServiceLogger

	// mu serializes load-modify-store cycles on form state.
	mu  sync.Mutex
	now func() time.Time
}

// NewFormService keeps form state in cacheService for ttl after its last change.
func NewFormService(
	repo repositories.Repository,
	records RecordService,
	reports ReportService,
	cacheService cache.CacheService,
	ttl time.Duration,
	validator *validator.Validator,
	logger *slog.Logger,
) FormService {
	if cacheService == nil {
		cacheService = cache.NewMemoryCache()
	}
	return &formService{
		repo:      repo,
		records:   records,
		reports:   reports,
		cache:     cacheService,
		ttl:       ttl,
		validator: validator,
		log:       NewServiceLogger(logger, LogConfig{Service: "reportcard", Component: "forms"}),
		now:       time.Now,
	}
}

// Open starts a form for the selection, pre-filled from the store.
func (s *formService) Open(ctx context.Context, selection models.FormSelection) (state *models.FormState, err error) {
	defer s.log.WithOperation(ctx, "open_form", "form").LogResult(&err)

	selection, err = s.checkSelection(selection)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state = &models.FormState{ID: uuid.NewString()}
	if err := s.fill(ctx, state, selection); err != nil {
		return nil, err
	}
	if err := s.put(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *formService) Get(ctx context.Context, id string) (*models.FormState, error) {
	return s.load(ctx, id)
}

// Select changes the (student, term, session) of a form. A different key
// discards everything entered so far and pre-fills again; the same key is a no-op.
func (s *formService) Select(ctx context.Context, id string, selection models.FormSelection) (state *models.FormState, err error) {
	defer s.log.WithOperation(ctx, "select_form", "form").LogResult(&err)

	selection, err = s.checkSelection(selection)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err = s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if state.Selection.Key() == selection.Key() {
		return state, nil
	}

	if err := s.fill(ctx, state, selection); err != nil {
		return nil, err
	}
	if err := s.put(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Update applies a partial edit. Scores may only be entered for listed subjects.
func (s *formService) Update(ctx context.Context, id string, update *models.FormUpdate) (state *models.FormState, err error) {
	defer s.log.WithOperation(ctx, "update_form", "form").LogResult(&err)

	if update == nil {
		return nil, fmt.Errorf("%w: form update is required", ErrBadRequest)
	}
	if err := s.validator.ValidateStruct(update); err != nil {
		return nil, toValidationErrors(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err = s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	setText(&state.Class, update.Class)
	setText(&state.NumberInClass, update.NumberInClass)
	setText(&state.School.Name, update.SchoolName)
	setText(&state.School.Address, update.SchoolAddress)
	setText(&state.TeacherComment, update.TeacherComment)
	setText(&state.PrincipalComment, update.PrincipalComment)

	if update.CustomSubjects != nil {
		state.CustomSubjects = *update.CustomSubjects
		state.Subjects = models.ResolveSubjects(state.CustomSubjects, state.SavedSubjects)
	}

	if errs := applyScores(state, update.Scores); errs.HasErrors() {
		return nil, errs
	}

	state.UpdatedAt = s.now()
	if err := s.put(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Preview assembles the report card the form would produce, without saving.
func (s *formService) Preview(ctx context.Context, id string) (*models.ReportCard, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	card := models.NewReportCard(state.Submission())
	card.School = card.School.WithDefaults()
	return card, nil
}

// Save stores the form as a submission, then re-fills the form from the store.
func (s *formService) Save(ctx context.Context, id string) (state *models.FormState, record *SubmissionRecord, err error) {
	defer s.log.WithOperation(ctx, "save_form", "form").LogResult(&err)

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err = s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := requireStudent(state.ID, state.Selection.StudentName); err != nil {
		return nil, nil, err
	}

	record, err = s.records.SaveSubmission(ctx, state.Submission())
	if err != nil {
		return nil, nil, err
	}

	if err := s.fill(ctx, state, state.Selection); err != nil {
		return nil, nil, err
	}
	if err := s.put(ctx, state); err != nil {
		return nil, nil, err
	}
	return state, record, nil
}

// Report renders the form's current content. Unsaved edits are included.
func (s *formService) Report(ctx context.Context, id string, format report.Format) (*report.Document, error) {
	card, err := s.Preview(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireStudent(id, card.StudentName); err != nil {
		return nil, err
	}
	return s.reports.RenderCard(ctx, card, format)
}

func (s *formService) Close(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, formCacheKey(id)); err != nil {
		return wrap("close form", err)
	}
	return nil
}

// ===== HELPERS =====

func (s *formService) checkSelection(selection models.FormSelection) (models.FormSelection, error) {
	selection.StudentName = strings.TrimSpace(selection.StudentName)
	selection.Session = strings.TrimSpace(selection.Session)
	if err := s.validator.ValidateStruct(&selection); err != nil {
		return selection, toValidationErrors(err)
	}
	return selection, nil
}

// fill resets state to the selection and pre-fills it. Rows of the exact term
// and session win; otherwise shared fields and subjects come from the student's
// latest submission and the marks start at their defaults.
func (s *formService) fill(ctx context.Context, state *models.FormState, selection models.FormSelection) error {
	profile, err := s.repo.SchoolProfiles().Get(ctx)
	if err != nil {
		return wrap("get school profile", err)
	}

	*state = models.FormState{
		ID:         state.ID,
		Selection:  selection,
		School:     profile.WithDefaults(),
		Scores:     make(map[string]models.SubjectScore),
		Generation: state.Generation + 1,
		UpdatedAt:  s.now(),
	}

	if selection.StudentName != "" {
		scores := s.repo.Scores()
		exact, err := scores.Find(ctx, selection.StudentName, repositories.ForPeriod(selection.Term, selection.Session))
		if err != nil {
			return wrap("find submission", err)
		}

		source := exact
		if len(source) == 0 {
			source, err = scores.Find(ctx, selection.StudentName, repositories.ScoreFilters{})
			if err != nil {
				return wrap("find submission", err)
			}
		}

		if len(source) > 0 {
			first := source[0]
			state.Class = first.Class
			state.NumberInClass = first.NumberInClass
			state.TeacherComment = first.TeacherComment
			state.PrincipalComment = first.PrincipalComment
			if first.SchoolName != "" {
				state.School.Name = first.SchoolName
			}
			if first.SchoolAddress != "" {
				state.School.Address = first.SchoolAddress
			}

			saved := models.NewSubjectList()
			for _, row := range source {
				saved.Add(row.Subject)
			}
			state.SavedSubjects = saved.Items()
		}

		for _, row := range exact {
			state.Scores[row.Subject] = models.SubjectScore{
				Subject: row.Subject,
				CA1:     models.ScorePair{Obtained: row.CA1Obtained, Max: row.CA1Max},
				CA2:     models.ScorePair{Obtained: row.CA2Obtained, Max: row.CA2Max},
				Exam:    models.ScorePair{Obtained: row.ExamObtained, Max: row.ExamMax},
			}
		}
	}

	state.Subjects = models.ResolveSubjects(state.CustomSubjects, state.SavedSubjects)
	return nil
}

func (s *formService) load(ctx context.Context, id string) (*models.FormState, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFormNotFound, id)
	}

	var state models.FormState
	if err := s.cache.Get(ctx, formCacheKey(id), &state); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, fmt.Errorf("%w: %s", ErrFormNotFound, id)
		}
		return nil, wrap("load form", err)
	}
	if state.Scores == nil {
		state.Scores = make(map[string]models.SubjectScore)
	}
	return &state, nil
}

func (s *formService) put(ctx context.Context, state *models.FormState) error {
	if err := s.cache.Set(ctx, formCacheKey(state.ID), state, s.ttl); err != nil {
		return wrap("store form", err)
	}
	return nil
}

// requireStudent rejects saving or rendering a form opened without a student.
func requireStudent(id, student string) error {
	if strings.TrimSpace(student) != "" {
		return nil
	}
	return NewBusinessRuleError("student_required",
		"Select or enter a student before saving or rendering the report card",
		map[string]interface{}{"form_id": id})
}

func setText(dst *string, value *string) {
	if value != nil {
		*dst = strings.TrimSpace(*value)
	}
}

// applyScores stores entered marks under the listed spelling of each subject.
func applyScores(state *models.FormState, scores map[string]models.SubjectScore) ValidationErrors {
	var errs ValidationErrors
	for name, score := range scores {
		subject, ok := listedSubject(state.Subjects, name)
		field := "scores." + strings.TrimSpace(name)
		if !ok {
			errs.Add(field, "is not one of the form's subjects", name)
			continue
		}

		valid := true
		for _, c := range []struct {
			name string
			pair models.ScorePair
		}{{"ca1", score.CA1}, {"ca2", score.CA2}, {"exam", score.Exam}} {
			if c.pair.Max < 1 {
				errs.Add(field+"."+c.name+".max", "must be at least 1", c.pair.Max)
				valid = false
			}
			if c.pair.Obtained < 0 {
				errs.Add(field+"."+c.name+".obtained", "must be at least 0", c.pair.Obtained)
				valid = false
			}
		}
		if valid {
			score.Subject = subject
			state.Scores[subject] = score
		}
	}
	return errs
}

func listedSubject(subjects []string, name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, subject := range subjects {
		if strings.EqualFold(subject, name) {
			return subject, true
		}
	}
	return "", false
}
