package auth

import (
	"time"

	"rentalhub/internal/pkg/session"
)

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest skips the email format check: a malformed address simply
// matches no credential.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
	Claims    *session.Claims
}
