package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is an auth principal. Its ID links to Profile.AuthAccountID.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is an issued, not yet revoked, sign-in.
type Session struct {
	ID        string    `json:"-"`
	Token     string    `json:"access_token"`
	AccountID uuid.UUID `json:"account_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
