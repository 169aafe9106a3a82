package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is the identity record issued at sign-up. It scopes every
// saved article and profile document belonging to a user.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserProfile links an account to its display fields. Created once at
// sign-up and immutable afterwards.
type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"accountId"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}
