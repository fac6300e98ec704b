package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentalhub/internal/domain"
)

// CredentialRepository stores host and guest accounts in separate tables.
type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *CredentialRepository) Create(ctx context.Context, c *domain.Credential) error {
	if !c.Role.Valid() {
		return fmt.Errorf("create credential: invalid role %q", c.Role)
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	m := CredentialRow{
		ID:           c.ID,
		Email:        normalizeEmail(c.Email),
		PasswordHash: c.PasswordHash,
	}
	if err := r.db.WithContext(ctx).Table(credentialTable(c.Role)).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create credential: %w", err)
	}
	*c = *toDomainCredential(c.Role, m)
	return nil
}

func (r *CredentialRepository) GetByEmail(ctx context.Context, role domain.UserRole, email string) (*domain.Credential, error) {
	var m CredentialRow
	err := r.db.WithContext(ctx).
		Table(credentialTable(role)).
		Where("email = ?", normalizeEmail(email)).
		First(&m).Error
	if err != nil {
		return nil, notFound(err)
	}
	return toDomainCredential(role, m), nil
}

func (r *CredentialRepository) ExistsByEmail(ctx context.Context, role domain.UserRole, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table(credentialTable(role)).
		Where("email = ?", normalizeEmail(email)).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return n > 0, nil
}
