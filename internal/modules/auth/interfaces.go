package auth

import (
	"context"

	"rentalhub/internal/domain"
)

// CredentialRepository is the slice of the credential store auth needs.
type CredentialRepository interface {
	Create(ctx context.Context, c *domain.Credential) error
	GetByEmail(ctx context.Context, role domain.UserRole, email string) (*domain.Credential, error)
	ExistsByEmail(ctx context.Context, role domain.UserRole, email string) (bool, error)
}
