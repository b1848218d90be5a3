package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"accesshub/internal/model"
	"accesshub/pkg/metrics"
)

// counterID is the conventional key of the singleton row.
const counterID = 1

type CounterRepository struct {
	db *pgxpool.Pool
}

func NewCounterRepository(db *pgxpool.Pool) *CounterRepository {
	return &CounterRepository{db: db}
}

// Increment bumps the counter in a single atomic upsert, creating the row
// with count=1 if it does not exist yet. Concurrent callers cannot lose
// updates: the arithmetic happens inside the statement, never in Go.
func (r *CounterRepository) Increment(ctx context.Context) (*model.CounterValue, error) {
	defer observe("upsert", "access_counter", time.Now())

	query := `
        INSERT INTO access_counter (id, count, created_at, last_updated)
        VALUES ($1, 1, now(), now())
        ON CONFLICT (id) DO UPDATE
        SET count = access_counter.count + 1, last_updated = now()
        RETURNING count, last_updated
    `
	var v model.CounterValue
	if err := r.db.QueryRow(ctx, query, counterID).Scan(&v.Count, &v.LastUpdated); err != nil {
		return nil, err
	}
	return &v, nil
}

// Reset sets the counter to zero with the same upsert shape as Increment.
func (r *CounterRepository) Reset(ctx context.Context) (*model.CounterValue, error) {
	defer observe("upsert", "access_counter", time.Now())

	query := `
        INSERT INTO access_counter (id, count, created_at, last_updated)
        VALUES ($1, 0, now(), now())
        ON CONFLICT (id) DO UPDATE
        SET count = 0, last_updated = now()
        RETURNING count, last_updated
    `
	var v model.CounterValue
	if err := r.db.QueryRow(ctx, query, counterID).Scan(&v.Count, &v.LastUpdated); err != nil {
		return nil, err
	}
	return &v, nil
}

// Get returns the stored counter, or nil if no row exists. Reading never
// creates the row.
func (r *CounterRepository) Get(ctx context.Context) (*model.AccessCounter, error) {
	defer observe("select", "access_counter", time.Now())

	query := `
        SELECT count, created_at, last_updated
        FROM access_counter
        WHERE id = $1
    `
	var c model.AccessCounter
	err := r.db.QueryRow(ctx, query, counterID).Scan(&c.Count, &c.CreatedAt, &c.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Integrity reports the row count and how many rows carry a negative
// count. Zero rows is a valid state.
func (r *CounterRepository) Integrity(ctx context.Context) (rows int64, negative int64, err error) {
	defer observe("select", "access_counter", time.Now())

	query := `
        SELECT count(*), count(*) FILTER (WHERE count < 0)
        FROM access_counter
    `
	err = r.db.QueryRow(ctx, query).Scan(&rows, &negative)
	return rows, negative, err
}

func observe(operation, table string, start time.Time) {
	metrics.RecordDBQueryDuration(operation, table, time.Since(start))
}
