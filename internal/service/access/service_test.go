package access

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accesshub/internal/apperrors"
	"accesshub/internal/model"
)

// fakeCounterRepo mimics the atomic upsert semantics of the real store:
// all arithmetic happens under one lock, exactly as a single SQL
// statement would.
type fakeCounterRepo struct {
	mu      sync.Mutex
	exists  bool
	count   int64
	created time.Time
	updated time.Time
}

func (f *fakeCounterRepo) Increment(ctx context.Context) (*model.CounterValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	if !f.exists {
		f.exists = true
		f.count = 1
		f.created = now
	} else {
		f.count++
	}
	f.updated = now
	return &model.CounterValue{Count: f.count, LastUpdated: f.updated}, nil
}

func (f *fakeCounterRepo) Reset(ctx context.Context) (*model.CounterValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	if !f.exists {
		f.exists = true
		f.created = now
	}
	f.count = 0
	f.updated = now
	return &model.CounterValue{Count: 0, LastUpdated: f.updated}, nil
}

func (f *fakeCounterRepo) Get(ctx context.Context) (*model.AccessCounter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.exists {
		return nil, nil
	}
	return &model.AccessCounter{Count: f.count, CreatedAt: f.created, LastUpdated: f.updated}, nil
}

func (f *fakeCounterRepo) Integrity(ctx context.Context) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.exists {
		return 0, 0, nil
	}
	var negative int64
	if f.count < 0 {
		negative = 1
	}
	return 1, negative, nil
}

func devMode() string { return "development" }

func TestIncrement_CreatesOnFirstCall(t *testing.T) {
	svc := NewService(&fakeCounterRepo{}, devMode)

	v, err := svc.Increment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Count)
}

func TestIncrement_NoLostUpdatesUnderConcurrency(t *testing.T) {
	const n = 200
	repo := &fakeCounterRepo{}
	svc := NewService(repo, devMode)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Increment(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	v, err := svc.CurrentCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(n), v.Count)
}

func TestCurrentCount_EmptyStoreReportsZeroWithoutCreating(t *testing.T) {
	repo := &fakeCounterRepo{}
	svc := NewService(repo, devMode)

	v, err := svc.CurrentCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.Count)
	assert.False(t, v.LastUpdated.IsZero())

	// Reading must not have created the record.
	valid, err := svc.ValidateIntegrity(context.Background())
	require.NoError(t, err)
	assert.True(t, valid)
	assert.False(t, repo.exists)
}

func TestReset_ForbiddenInProduction(t *testing.T) {
	repo := &fakeCounterRepo{}
	svc := NewService(repo, devMode)

	_, err := svc.Increment(context.Background())
	require.NoError(t, err)

	mode := "production"
	svc = NewService(repo, func() string { return mode })

	_, err = svc.Reset(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.From(err).Kind)

	// Counter untouched by the refused reset.
	v, err := svc.CurrentCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Count)

	// The mode is read per call, so flipping it re-enables reset.
	mode = "development"
	v2, err := svc.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), v2.Count)
}

func TestStatistics_EmptyStore(t *testing.T) {
	svc := NewService(&fakeCounterRepo{}, devMode)

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Count)
	assert.Nil(t, stats.CreatedAt)
	assert.Nil(t, stats.AverageAccessesPerDay)
}

func TestStatistics_AverageClampsToOneDay(t *testing.T) {
	// Created moments ago: the elapsed-days divisor clamps to 1.
	repo := &fakeCounterRepo{}
	svc := NewService(repo, devMode)
	for i := 0; i < 5; i++ {
		_, err := svc.Increment(context.Background())
		require.NoError(t, err)
	}

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stats.AverageAccessesPerDay)
	assert.InDelta(t, 5.0, *stats.AverageAccessesPerDay, 0.001)
	assert.NotNil(t, stats.CreatedAt)
}

func TestStatistics_AverageOverLifetime(t *testing.T) {
	repo := &fakeCounterRepo{
		exists:  true,
		count:   100,
		created: time.Now().Add(-10 * 24 * time.Hour),
		updated: time.Now(),
	}
	svc := NewService(repo, devMode)

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stats.AverageAccessesPerDay)
	assert.InDelta(t, 10.0, *stats.AverageAccessesPerDay, 0.1)
}

func TestValidateIntegrity_NegativeCount(t *testing.T) {
	repo := &fakeCounterRepo{exists: true, count: -3}
	svc := NewService(repo, devMode)

	valid, err := svc.ValidateIntegrity(context.Background())
	require.NoError(t, err)
	assert.False(t, valid)
}
