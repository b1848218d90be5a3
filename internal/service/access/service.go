// Package access implements the access-counter semantics on top of the
// atomic upsert primitives exposed by the repository. The service never
// does read-modify-write arithmetic itself.
package access

import (
	"context"
	"time"

	"accesshub/internal/apperrors"
	"accesshub/internal/model"
	"accesshub/pkg/metrics"
)

// CounterRepo is the slice of the repository the service needs.
type CounterRepo interface {
	Increment(ctx context.Context) (*model.CounterValue, error)
	Reset(ctx context.Context) (*model.CounterValue, error)
	Get(ctx context.Context) (*model.AccessCounter, error)
	Integrity(ctx context.Context) (rows int64, negative int64, err error)
}

type Service struct {
	repo CounterRepo
	// mode is read on every Reset call, not captured at construction,
	// so the production gate follows live environment changes.
	mode func() string
}

func NewService(repo CounterRepo, mode func() string) *Service {
	return &Service{repo: repo, mode: mode}
}

func (s *Service) Increment(ctx context.Context) (*model.CounterValue, error) {
	v, err := s.repo.Increment(ctx)
	if err != nil {
		return nil, err
	}
	metrics.AccessIncrementCount.Inc()
	return v, nil
}

// CurrentCount reads the counter without creating it. A never-touched
// store reports zero.
func (s *Service) CurrentCount(ctx context.Context) (*model.CounterValue, error) {
	c, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &model.CounterValue{Count: 0, LastUpdated: time.Now().UTC()}, nil
	}
	return &model.CounterValue{Count: c.Count, LastUpdated: c.LastUpdated}, nil
}

// Reset zeroes the counter. Refused in production.
func (s *Service) Reset(ctx context.Context) (*model.CounterValue, error) {
	if s.mode() == "production" {
		return nil, apperrors.Forbidden("counter reset is not allowed in production")
	}
	return s.repo.Reset(ctx)
}

// Statistics reports the counter plus the per-day average over its
// lifetime. Days are floored and clamped to at least one so a counter
// created today still yields a meaningful average.
func (s *Service) Statistics(ctx context.Context) (*model.CounterStats, error) {
	c, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &model.CounterStats{Count: 0, LastUpdated: time.Now().UTC()}, nil
	}

	days := int64(time.Since(c.CreatedAt).Hours() / 24)
	if days < 1 {
		days = 1
	}
	avg := float64(c.Count) / float64(days)

	createdAt := c.CreatedAt
	return &model.CounterStats{
		Count:                 c.Count,
		LastUpdated:           c.LastUpdated,
		CreatedAt:             &createdAt,
		AverageAccessesPerDay: &avg,
	}, nil
}

// ValidateIntegrity checks the singleton convention: more than one row or
// a negative count means the store is corrupt. Zero rows is healthy.
func (s *Service) ValidateIntegrity(ctx context.Context) (bool, error) {
	rows, negative, err := s.repo.Integrity(ctx)
	if err != nil {
		return false, err
	}
	return rows <= 1 && negative == 0, nil
}
