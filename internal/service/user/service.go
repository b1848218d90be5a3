// Package user implements user CRUD, pagination and statistics. All
// input is normalized and validated here before any store call runs.
package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"accesshub/internal/apperrors"
	"accesshub/internal/model"
	"accesshub/internal/repository"
	"accesshub/internal/validation"
	"accesshub/pkg/util"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// UserRepo is the slice of the repository the service needs.
type UserRepo interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, limit, offset int) ([]*model.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (*model.UserStats, error)
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int64 `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

type Service struct {
	repo       UserRepo
	bcryptCost int
}

func NewService(repo UserRepo, bcryptCost int) *Service {
	return &Service{repo: repo, bcryptCost: bcryptCost}
}

// Create validates, normalizes and persists a new user. Uniqueness is
// checked before the insert; the unique index catches the race anyway.
func (s *Service) Create(ctx context.Context, name, email, password string) (*model.PublicUser, error) {
	name = validation.NormalizeName(name)
	email = validation.NormalizeEmail(email)

	var violations []string
	violations = append(violations, validation.Run(name, validation.NameRules)...)
	violations = append(violations, validation.Run(email, validation.EmailRules)...)
	violations = append(violations, validation.Run(password, validation.PasswordRules)...)
	if len(violations) > 0 {
		return nil, apperrors.Validation(validation.JoinViolations(violations))
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("email already in use")
	}

	hash, err := util.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("email already in use")
		}
		return nil, err
	}

	return u.Public(), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*model.PublicUser, error) {
	if _, err := validation.ParseID(id); err != nil {
		return nil, apperrors.Validation("invalid user id format")
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}
	return u.Public(), nil
}

// GetByEmail returns the full internal record, hash included, for auth
// use. A miss is nil, not an error.
func (s *Service) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.repo.FindByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// List returns one page of users, newest first, with pagination metadata.
// Out-of-range page and limit values are clamped to their bounds.
func (s *Service) List(ctx context.Context, page, limit int) ([]*model.PublicUser, *Pagination, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, nil, err
	}

	users, err := s.repo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, err
	}

	public := make([]*model.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}

	pages := (total + int64(limit) - 1) / int64(limit)
	return public, &Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: int64(page) < pages,
		HasPrev: page > 1,
	}, nil
}

// Update applies a partial update of name and/or email. The password is
// not reachable through this path.
func (s *Service) Update(ctx context.Context, id string, name, email *string) (*model.PublicUser, error) {
	if _, err := validation.ParseID(id); err != nil {
		return nil, apperrors.Validation("invalid user id format")
	}
	if name == nil && email == nil {
		return nil, apperrors.Validation("no fields to update")
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}

	var violations []string
	if name != nil {
		u.Name = validation.NormalizeName(*name)
		violations = append(violations, validation.Run(u.Name, validation.NameRules)...)
	}
	if email != nil {
		next := validation.NormalizeEmail(*email)
		violations = append(violations, validation.Run(next, validation.EmailRules)...)
		if len(violations) == 0 && next != u.Email {
			holder, err := s.repo.FindByEmail(ctx, next)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return nil, err
			}
			if holder != nil && holder.ID != u.ID {
				return nil, apperrors.Conflict("email already in use")
			}
		}
		u.Email = next
	}
	if len(violations) > 0 {
		return nil, apperrors.Validation(validation.JoinViolations(violations))
	}

	if err := s.repo.Update(ctx, u); err != nil {
		switch {
		case repository.IsUniqueViolation(err):
			return nil, apperrors.Conflict("email already in use")
		case errors.Is(err, pgx.ErrNoRows):
			return nil, apperrors.NotFound("user not found")
		default:
			return nil, err
		}
	}
	return u.Public(), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := validation.ParseID(id); err != nil {
		return apperrors.Validation("invalid user id format")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("user not found")
	}
	return nil
}

func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	if _, err := validation.ParseID(id); err != nil {
		return false, apperrors.Validation("invalid user id format")
	}
	return s.repo.Exists(ctx, id)
}

func (s *Service) Statistics(ctx context.Context) (*model.UserStats, error) {
	return s.repo.Stats(ctx)
}
