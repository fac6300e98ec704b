package domain

import (
	"fmt"
	"strings"
	"time"
)

type UserRole string

const (
	RoleHost  UserRole = "host"
	RoleGuest UserRole = "guest"
)

// ParseRole accepts the role segment used in /signup/:role and /login/:role.
func ParseRole(s string) (UserRole, error) {
	switch UserRole(strings.ToLower(strings.TrimSpace(s))) {
	case RoleHost:
		return RoleHost, nil
	case RoleGuest:
		return RoleGuest, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r UserRole) Valid() bool {
	return r == RoleHost || r == RoleGuest
}

// Credential is a host or guest account. Hosts and guests are separate
// namespaces, so the same email can exist once per role.
type Credential struct {
	ID           string    `json:"id"`
	Role         UserRole  `json:"role"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
