package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/newskeeper/newskeeper/internal/domain"
)

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Username string `json:"username" validate:"required,min=2,max=64"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Profile struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"accountId"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionResponse is returned by sign-up and sign-in.
type SessionResponse struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

// MeResponse carries the current user, or null when no session is
// active. A null user is a normal state, not an error.
type MeResponse struct {
	User *Profile `json:"user"`
}

func ProfileFromDomain(p *domain.UserProfile) Profile {
	return Profile{
		ID:        p.ID,
		AccountID: p.AccountID,
		Email:     p.Email,
		Username:  p.Username,
		Avatar:    p.AvatarURL,
		CreatedAt: p.CreatedAt,
	}
}
