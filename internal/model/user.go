package model

import "time"

// User is the internal record, password hash included. It never crosses
// the HTTP boundary; handlers serialize PublicUser instead.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the outward-facing shape. There is no password field at
// all, so no serialization path can leak the hash.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserStats are aggregate counts computed in SQL at request time.
type UserStats struct {
	Total            int64 `json:"total"`
	CreatedToday     int64 `json:"createdToday"`
	CreatedLast7Days int64 `json:"createdLast7Days"`
	CreatedThisMonth int64 `json:"createdThisMonth"`
}
