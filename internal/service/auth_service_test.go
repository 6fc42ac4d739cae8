package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickdesk/helpdesk-api/internal/auth"
	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/repository"
	"github.com/quickdesk/helpdesk-api/internal/repository/memory"
	apperrors "github.com/quickdesk/helpdesk-api/pkg/util"
)

func newAuthFixture(t *testing.T) (*AuthService, repository.UserRepository) {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	tokens := auth.NewTokenManager("test-secret", 60)
	return NewAuthService(users, tokens, bcrypt.MinCost), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{
		Email:       "  Rita@Example.com ",
		Password:    "hunter22",
		DisplayName: "Rita",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "rita@example.com", result.User.Email)
	assert.Equal(t, domain.RoleEndUser, result.User.Role)
	assert.True(t, result.User.IsActive)
	assert.Equal(t, domain.DefaultSettings(), result.User.Settings)

	login, err := svc.Login(ctx, "rita@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "not-an-email", Password: "hunter22"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = svc.Register(ctx, RegisterInput{Email: "ok@example.com", Password: "short"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "rita@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "RITA@example.com", Password: "hunter22"})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestLoginFailures(t *testing.T) {
	svc, users := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{Email: "rita@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "rita@example.com", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	_, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	result.User.IsActive = false
	require.NoError(t, users.Update(ctx, result.User))
	_, err = svc.Login(ctx, "rita@example.com", "hunter22")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestCreateAccountRoles(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	agent, err := svc.CreateAccount(ctx, RegisterInput{
		Email:    "sam@example.com",
		Password: "hunter22",
	}, domain.RoleAgent)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAgent, agent.Role)

	_, err = svc.CreateAccount(ctx, RegisterInput{
		Email:    "who@example.com",
		Password: "hunter22",
	}, "superuser")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
