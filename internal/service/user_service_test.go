package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/repository"
	"github.com/quickdesk/helpdesk-api/internal/repository/memory"
	apperrors "github.com/quickdesk/helpdesk-api/pkg/util"
)

func newUserFixture(t *testing.T) (*UserService, repository.UserRepository, *domain.User) {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	admin := &domain.User{Email: "admin@example.com", Role: domain.RoleAdmin, IsActive: true, Settings: domain.DefaultSettings()}
	require.NoError(t, users.Create(context.Background(), admin))
	return NewUserService(users), users, admin
}

func TestProfileUpdatePartial(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	ctx := context.Background()

	user := &domain.User{Email: "rita@example.com", Role: domain.RoleEndUser, DisplayName: "Rita", Phone: "555-0101", IsActive: true}
	require.NoError(t, users.Create(ctx, user))

	name := "Rita L."
	company := "Acme"
	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{DisplayName: &name, Company: &company})
	require.NoError(t, err)
	assert.Equal(t, "Rita L.", updated.DisplayName)
	assert.Equal(t, "Acme", updated.Company)
	// untouched fields survive
	assert.Equal(t, "555-0101", updated.Phone)

	_, err = svc.GetProfile(ctx, "missing-id")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestSettingsRoundTrip(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	ctx := context.Background()

	user := &domain.User{Email: "rita@example.com", Role: domain.RoleEndUser, IsActive: true, Settings: domain.DefaultSettings()}
	require.NoError(t, users.Create(ctx, user))

	settings, err := svc.GetSettings(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, settings.Notifications.EmailNotifications)

	settings.Notifications.EmailNotifications = false
	settings.Theme = "dark"
	saved, err := svc.UpdateSettings(ctx, user.ID, settings)
	require.NoError(t, err)
	assert.False(t, saved.Notifications.EmailNotifications)
	assert.Equal(t, "dark", saved.Theme)
	assert.Equal(t, "en", saved.Language)
}

func TestListAccountsFilters(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	ctx := context.Background()

	for _, spec := range []struct {
		email string
		role  domain.UserRole
	}{
		{"rita@example.com", domain.RoleEndUser},
		{"sam@example.com", domain.RoleAgent},
		{"lee@example.com", domain.RoleAgent},
	} {
		require.NoError(t, users.Create(ctx, &domain.User{Email: spec.email, Role: spec.role, IsActive: true}))
	}

	agents, pagination, err := svc.ListAccounts(ctx, UserListInput{Role: "agent"})
	require.NoError(t, err)
	assert.Equal(t, 2, pagination.Total)
	for _, account := range agents {
		assert.Equal(t, domain.RoleAgent, account.Role)
	}

	found, pagination, err := svc.ListAccounts(ctx, UserListInput{Search: "rita"})
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Total)
	require.Len(t, found, 1)
	assert.Equal(t, "rita@example.com", found[0].Email)

	_, _, err = svc.ListAccounts(ctx, UserListInput{Role: "wizard"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestAdminAccountEdits(t *testing.T) {
	svc, users, admin := newUserFixture(t)
	ctx := context.Background()

	user := &domain.User{Email: "rita@example.com", Role: domain.RoleEndUser, IsActive: true}
	require.NoError(t, users.Create(ctx, user))

	role := domain.RoleAgent
	updated, err := svc.UpdateAccount(ctx, admin, user.ID, AccountUpdate{
		Role:        &role,
		Permissions: []domain.Permission{domain.PermManageCategories},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAgent, updated.Role)
	assert.True(t, updated.HasPermission(domain.PermManageCategories))

	inactive := false
	deactivated, err := svc.UpdateAccount(ctx, admin, user.ID, AccountUpdate{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
}

func TestAdminCannotLockThemselvesOut(t *testing.T) {
	svc, _, admin := newUserFixture(t)
	ctx := context.Background()

	demoted := domain.RoleEndUser
	_, err := svc.UpdateAccount(ctx, admin, admin.ID, AccountUpdate{Role: &demoted})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	inactive := false
	_, err = svc.UpdateAccount(ctx, admin, admin.ID, AccountUpdate{IsActive: &inactive})
	require.Error(t, err)

	err = svc.DeleteAccount(ctx, admin, admin.ID)
	require.Error(t, err)
}

func TestDeleteAccount(t *testing.T) {
	svc, users, admin := newUserFixture(t)
	ctx := context.Background()

	user := &domain.User{Email: "rita@example.com", Role: domain.RoleEndUser, IsActive: true}
	require.NoError(t, users.Create(ctx, user))

	require.NoError(t, svc.DeleteAccount(ctx, admin, user.ID))

	_, err := svc.GetAccount(ctx, user.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	err = svc.DeleteAccount(ctx, admin, user.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
