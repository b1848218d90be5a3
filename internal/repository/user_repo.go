package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"accesshub/internal/model"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and fills in the generated timestamps.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	defer observe("insert", "users", time.Now())

	query := `
        INSERT INTO users (id, name, email, password_hash)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at
    `
	return r.db.QueryRow(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash).
		Scan(&u.CreatedAt, &u.UpdatedAt)
}

// FindByID returns the user or pgx.ErrNoRows.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	defer observe("select", "users", time.Now())

	query := `
        SELECT id, name, email, password_hash, created_at, updated_at
        FROM users
        WHERE id = $1
    `
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// FindByEmail matches case-insensitively and returns the full record,
// hash included, or pgx.ErrNoRows.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	defer observe("select", "users", time.Now())

	query := `
        SELECT id, name, email, password_hash, created_at, updated_at
        FROM users
        WHERE lower(email) = lower($1)
    `
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// List returns one page of users, newest first.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	defer observe("select", "users", time.Now())

	query := `
        SELECT id, name, email, password_hash, created_at, updated_at
        FROM users
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	defer observe("select", "users", time.Now())

	var total int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total)
	return total, err
}

// Update persists name and email and bumps updated_at.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	defer observe("update", "users", time.Now())

	query := `
        UPDATE users
        SET name = $2, email = $3, updated_at = now()
        WHERE id = $1
        RETURNING updated_at
    `
	return r.db.QueryRow(ctx, query, u.ID, u.Name, u.Email).Scan(&u.UpdatedAt)
}

// Delete removes the user and reports whether a row actually existed.
func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	defer observe("delete", "users", time.Now())

	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	defer observe("select", "users", time.Now())

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// Stats computes the aggregate counts in one pass over the table.
func (r *UserRepository) Stats(ctx context.Context) (*model.UserStats, error) {
	defer observe("select", "users", time.Now())

	query := `
        SELECT count(*),
               count(*) FILTER (WHERE created_at >= date_trunc('day', now())),
               count(*) FILTER (WHERE created_at >= now() - interval '7 days'),
               count(*) FILTER (WHERE created_at >= date_trunc('month', now()))
        FROM users
    `
	var s model.UserStats
	err := r.db.QueryRow(ctx, query).
		Scan(&s.Total, &s.CreatedToday, &s.CreatedLast7Days, &s.CreatedThisMonth)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// IsUniqueViolation reports whether err is a Postgres unique-index
// violation (the insert-time race net behind the email pre-check).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsNoRows reports whether err means the query matched nothing.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
