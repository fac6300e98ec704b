package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/session"
	"rentalhub/internal/repository"
)

type mockCredentialRepo struct {
	mock.Mock
}

func (m *mockCredentialRepo) Create(ctx context.Context, c *domain.Credential) error {
	args := m.Called(ctx, c)
	if c != nil {
		c.ID = "cred-1"
	}
	return args.Error(0)
}

func (m *mockCredentialRepo) GetByEmail(ctx context.Context, role domain.UserRole, email string) (*domain.Credential, error) {
	args := m.Called(ctx, role, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *mockCredentialRepo) ExistsByEmail(ctx context.Context, role domain.UserRole, email string) (bool, error) {
	args := m.Called(ctx, role, email)
	return args.Bool(0), args.Error(1)
}

func newTestService(repo CredentialRepository) (*Service, *session.MemoryRevoker) {
	revoker := session.NewMemoryRevoker(100)
	svc := NewService(repo, session.New("test-secret-0123456789", time.Hour), revoker)
	svc.bcryptCost = bcrypt.MinCost
	return svc, revoker
}

func TestSignup_Success(t *testing.T) {
	repo := new(mockCredentialRepo)
	svc, revoker := newTestService(repo)
	defer revoker.Stop()
	ctx := context.Background()

	repo.On("ExistsByEmail", ctx, domain.RoleHost, "a@b.com").Return(false, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(c *domain.Credential) bool {
		return c.Email == "a@b.com" &&
			c.Role == domain.RoleHost &&
			bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte("secret1")) == nil
	})).Return(nil)

	c, err := svc.Signup(ctx, domain.RoleHost, SignupRequest{Email: "  A@B.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "cred-1", c.ID)
	repo.AssertExpectations(t)
}

func TestSignup_Duplicate(t *testing.T) {
	repo := new(mockCredentialRepo)
	svc, revoker := newTestService(repo)
	defer revoker.Stop()
	ctx := context.Background()

	repo.On("ExistsByEmail", ctx, domain.RoleGuest, "a@b.com").Return(true, nil)

	_, err := svc.Signup(ctx, domain.RoleGuest, SignupRequest{Email: "a@b.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignup_DuplicateRace(t *testing.T) {
	repo := new(mockCredentialRepo)
	svc, revoker := newTestService(repo)
	defer revoker.Stop()
	ctx := context.Background()

	repo.On("ExistsByEmail", ctx, domain.RoleGuest, "a@b.com").Return(false, nil)
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.Signup(ctx, domain.RoleGuest, SignupRequest{Email: "a@b.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestSignup_UnknownRole(t *testing.T) {
	svc, revoker := newTestService(new(mockCredentialRepo))
	defer revoker.Stop()

	_, err := svc.Signup(context.Background(), domain.UserRole("admin"), SignupRequest{Email: "a@b.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestLogin(t *testing.T) {
	repo := new(mockCredentialRepo)
	svc, revoker := newTestService(repo)
	defer revoker.Stop()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.Credential{ID: "u1", Role: domain.RoleGuest, Email: "a@b.com", PasswordHash: string(hash)}

	repo.On("GetByEmail", ctx, domain.RoleGuest, "a@b.com").Return(stored, nil)
	repo.On("GetByEmail", ctx, domain.RoleGuest, "ghost@b.com").Return(nil, repository.ErrNotFound)

	res, err := svc.Login(ctx, domain.RoleGuest, LoginRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", res.UserID)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, domain.RoleGuest, res.Claims.Role)

	_, errWrong := svc.Login(ctx, domain.RoleGuest, LoginRequest{Email: "a@b.com", Password: "nope"})
	_, errUnknown := svc.Login(ctx, domain.RoleGuest, LoginRequest{Email: "ghost@b.com", Password: "secret1"})
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestLogout_RevokesToken(t *testing.T) {
	repo := new(mockCredentialRepo)
	svc, revoker := newTestService(repo)
	defer revoker.Stop()
	ctx := context.Background()

	token, claims, err := svc.sessions.Issue("u1", domain.RoleHost)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))
	revoked, err := revoker.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.NoError(t, svc.Logout(ctx, ""))
	assert.NoError(t, svc.Logout(ctx, "garbage"))
}
