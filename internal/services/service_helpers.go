package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SAP-F-2025/reportcard-service/internal/cache"
	"github.com/SAP-F-2025/reportcard-service/internal/events"
	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/validator"
)

// Cache keys
const (
	rankingCachePattern = "rankings:*"
	formCachePrefix     = "form:"
)

func rankingCacheKey(kind string, term models.Term, session string, extra ...string) string {
	parts := append([]string{"rankings", kind, string(term), session}, extra...)
	return strings.Join(parts, ":")
}

func formCacheKey(id string) string {
	return formCachePrefix + id
}

// validatePeriod checks a term and session chosen outside of a bound struct.
func validatePeriod(term models.Term, session string) error {
	var errs ValidationErrors
	if !term.IsValid() {
		errs.Add("term", "must be First Term, Second Term, or Third Term", string(term))
	}
	if !validator.IsAcademicSession(session) {
		errs.Add("session", "must be an academic session such as 2024/2025", session)
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// normalizeSubmission trims the free-text fields a form posts.
func normalizeSubmission(sub *models.StudentSubmission) {
	sub.StudentName = strings.TrimSpace(sub.StudentName)
	sub.Class = strings.TrimSpace(sub.Class)
	sub.NumberInClass = strings.TrimSpace(sub.NumberInClass)
	sub.Session = strings.TrimSpace(sub.Session)
	sub.School.Name = strings.TrimSpace(sub.School.Name)
	sub.School.Address = strings.TrimSpace(sub.School.Address)
	for i := range sub.Subjects {
		sub.Subjects[i].Subject = strings.TrimSpace(sub.Subjects[i].Subject)
	}
}

// sideEffects bundles the best-effort work that follows a successful write:
// cache invalidation and event publishing. Failures are logged, never returned.
type sideEffects struct {
	cache     cache.CacheService
	publisher events.EventPublisher
	log       *ServiceLogger
}

func (s sideEffects) invalidateRankings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, rankingCachePattern); err != nil {
		s.log.Warn(ctx, "Failed to invalidate ranking cache", "error", err)
	}
}

func (s sideEffects) publish(ctx context.Context, event *events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn(ctx, "Failed to publish event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
	}
}

// cached loads key into dest. Misses and cache failures both report false.
func (s sideEffects) cached(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		s.log.Debug(ctx, "Cache hit", "key", key)
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn(ctx, "Cache read failed", "key", key, "error", err)
	}
	return false
}

func (s sideEffects) store(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cache == nil || ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		s.log.Warn(ctx, "Cache write failed", "key", key, "error", err)
	}
}

func wrap(action string, err error) error {
	return fmt.Errorf("failed to %s: %w", action, err)
}
