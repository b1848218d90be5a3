// Package auth issues signed tokens for verified credentials.
package auth

import (
	"context"

	"accesshub/internal/apperrors"
	"accesshub/internal/model"
	"accesshub/pkg/util"
)

// UserLookup is satisfied by the user service.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type Service struct {
	users     UserLookup
	jwtSecret string
}

func NewService(users UserLookup, jwtSecret string) *Service {
	return &Service{users: users, jwtSecret: jwtSecret}
}

// Login checks credentials and returns a signed token with the public
// user. Every failure collapses into the same message so callers cannot
// probe which emails are registered.
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.PublicUser, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !util.CheckPassword(password, u.PasswordHash) {
		return "", nil, apperrors.Validation("invalid email or password")
	}

	token, err := util.GenerateJWT(u.ID, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return token, u.Public(), nil
}
