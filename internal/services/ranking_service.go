package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/reportcard-service/internal/cache"
	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/ranking"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories"
)

type rankingService struct {
	repo    repositories.Repository
	ttl     time.Duration
	log     *ServiceLogger
	effects sideEffects
}

// NewRankingService builds leaderboards from the store. Results are cached for
// ttl and dropped whenever a submission is saved; a zero ttl disables caching.
func NewRankingService(repo repositories.Repository, cacheService cache.CacheService, ttl time.Duration, logger *slog.Logger) RankingService {
	log := NewServiceLogger(logger, LogConfig{Service: "reportcard", Component: "rankings"})
	return &rankingService{
		repo:    repo,
		ttl:     ttl,
		log:     log,
		effects: sideEffects{cache: cacheService, log: log},
	}
}

func (s *rankingService) OverallRanking(ctx context.Context, term models.Term, session string) (standings []models.OverallStanding, err error) {
	defer s.log.WithOperation(ctx, "overall_ranking", "ranking").LogResult(&err)

	if err := validatePeriod(term, session); err != nil {
		return nil, err
	}

	key := rankingCacheKey("overall", term, session)
	if s.effects.cached(ctx, key, &standings) {
		return standings, nil
	}

	rows, err := s.periodRows(ctx, term, session)
	if err != nil {
		return nil, err
	}

	standings = ranking.OverallRanking(rows, term, session)
	s.effects.store(ctx, key, standings, s.ttl)
	return standings, nil
}

func (s *rankingService) SubjectRanking(ctx context.Context, term models.Term, session, subject string) (standings []models.SubjectStanding, err error) {
	defer s.log.WithOperation(ctx, "subject_ranking", "ranking").LogResult(&err)

	if err := validatePeriod(term, session); err != nil {
		return nil, err
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		var errs ValidationErrors
		errs.Add("subject", "is required", subject)
		return nil, errs
	}

	key := rankingCacheKey("subject", term, session, subject)
	if s.effects.cached(ctx, key, &standings) {
		return standings, nil
	}

	rows, err := s.periodRows(ctx, term, session)
	if err != nil {
		return nil, err
	}

	standings = ranking.SubjectRanking(rows, term, session, subject)
	s.effects.store(ctx, key, standings, s.ttl)
	return standings, nil
}

// Subjects lists the subjects recorded in a term and session, first seen first.
func (s *rankingService) Subjects(ctx context.Context, term models.Term, session string) (subjects []string, err error) {
	if err := validatePeriod(term, session); err != nil {
		return nil, err
	}

	key := rankingCacheKey("subjects", term, session)
	if s.effects.cached(ctx, key, &subjects) {
		return subjects, nil
	}

	rows, err := s.periodRows(ctx, term, session)
	if err != nil {
		return nil, err
	}

	subjects = ranking.Subjects(rows, term, session)
	s.effects.store(ctx, key, subjects, s.ttl)
	return subjects, nil
}

func (s *rankingService) periodRows(ctx context.Context, term models.Term, session string) ([]models.ScoreRow, error) {
	rows, err := s.repo.Scores().List(ctx, repositories.ForPeriod(term, session))
	if err != nil {
		return nil, wrap("list scores", err)
	}
	return rows, nil
}
