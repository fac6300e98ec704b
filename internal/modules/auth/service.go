package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/logger"
	"rentalhub/internal/pkg/session"
	"rentalhub/internal/repository"
)

type Service struct {
	credentials CredentialRepository
	sessions    *session.Service
	revoker     session.Revoker
	bcryptCost  int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewService(credentials CredentialRepository, sessions *session.Service, revoker session.Revoker) *Service {
	return &Service{
		credentials: credentials,
		sessions:    sessions,
		revoker:     revoker,
		bcryptCost:  bcrypt.DefaultCost,
	}
}

// Signup stores a new account in the role's partition and returns it.
func (s *Service) Signup(ctx context.Context, role domain.UserRole, req SignupRequest) (*domain.Credential, error) {
	if !role.Valid() {
		return nil, ErrUnknownRole
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.credentials.ExistsByEmail(ctx, role, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	c := &domain.Credential{Role: role, Email: email, PasswordHash: hash}
	if err := s.credentials.Create(ctx, c); err != nil {
		// lost a race with a concurrent signup for the same email
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	logger.WithContext(ctx).Info("account created", "role", role, "user_id", c.ID)
	return c, nil
}

// Login verifies the password and issues a session marker. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, role domain.UserRole, req LoginRequest) (*LoginResult, error) {
	if !role.Valid() {
		return nil, ErrUnknownRole
	}

	c, err := s.credentials.GetByEmail(ctx, role, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.sessions.Issue(c.ID, role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		UserID:    c.ID,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Claims:    claims,
	}, nil
}

// Logout revokes the session marker until it would have expired.
// Missing or invalid tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.sessions.Parse(token)
	if err != nil {
		return nil
	}
	if s.revoker == nil {
		return nil
	}
	return s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.bcryptCost)
	})
	return s.dummyHash
}
