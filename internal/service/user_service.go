package service

import (
	"context"
	"errors"
	"math"

	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/repository"
	apperrors "github.com/quickdesk/helpdesk-api/pkg/util"
)

// UserService covers profile self-service and admin account management.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// ProfileUpdate holds the fields a user may change about themselves. Nil
// pointers leave the current value in place.
type ProfileUpdate struct {
	DisplayName *string
	Phone       *string
	Company     *string
	Timezone    *string
	Avatar      *string
}

// UserListInput describes admin account listing parameters.
type UserListInput struct {
	Role   string
	Search string
	Page   int
	Limit  int
}

// AccountUpdate holds the fields an admin may change on any account.
type AccountUpdate struct {
	Role        *domain.UserRole
	Permissions []domain.Permission
	IsActive    *bool
}

// GetProfile loads the account behind the principal.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, s.mapUserErr(err, userID)
	}
	return user, nil
}

// UpdateProfile applies partial self-service edits.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, s.mapUserErr(err, userID)
	}
	if update.DisplayName != nil {
		user.DisplayName = *update.DisplayName
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.Company != nil {
		user.Company = *update.Company
	}
	if update.Timezone != nil {
		user.Timezone = *update.Timezone
	}
	if update.Avatar != nil {
		user.Avatar = *update.Avatar
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// GetSettings returns the account's preference blob.
func (s *UserService) GetSettings(ctx context.Context, userID string) (domain.UserSettings, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.UserSettings{}, s.mapUserErr(err, userID)
	}
	return user.Settings, nil
}

// UpdateSettings replaces the account's preference blob wholesale.
func (s *UserService) UpdateSettings(ctx context.Context, userID string, settings domain.UserSettings) (domain.UserSettings, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.UserSettings{}, s.mapUserErr(err, userID)
	}
	if settings.Language == "" {
		settings.Language = user.Settings.Language
	}
	if settings.Theme == "" {
		settings.Theme = user.Settings.Theme
	}
	user.Settings = settings
	if err := s.users.Update(ctx, user); err != nil {
		return domain.UserSettings{}, apperrors.MapError(err)
	}
	return user.Settings, nil
}

// ListAccounts pages through accounts for the admin console.
func (s *UserService) ListAccounts(ctx context.Context, input UserListInput) ([]domain.User, Pagination, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 10
	}

	filter := repository.UserFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if input.Role != "" {
		role := domain.UserRole(input.Role)
		if !role.Valid() {
			return nil, Pagination{}, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
		}
		filter.Role = &role
	}
	if input.Search != "" {
		filter.Search = &input.Search
	}

	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, Pagination{}, apperrors.MapError(err)
	}
	pagination := Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	return users, pagination, nil
}

// GetAccount loads any account by id for the admin console.
func (s *UserService) GetAccount(ctx context.Context, userID string) (*domain.User, error) {
	return s.GetProfile(ctx, userID)
}

// UpdateAccount applies admin edits: role, explicit permissions, active flag.
// Admins cannot deactivate or demote their own account.
func (s *UserService) UpdateAccount(ctx context.Context, actor *domain.User, userID string, update AccountUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, s.mapUserErr(err, userID)
	}
	if update.Role != nil {
		if !update.Role.Valid() {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": *update.Role})
		}
		if user.ID == actor.ID && *update.Role != domain.RoleAdmin {
			return nil, apperrors.NewValidationError("cannot demote your own account", nil)
		}
		user.Role = *update.Role
	}
	if update.Permissions != nil {
		user.Permissions = update.Permissions
	}
	if update.IsActive != nil {
		if user.ID == actor.ID && !*update.IsActive {
			return nil, apperrors.NewValidationError("cannot deactivate your own account", nil)
		}
		user.IsActive = *update.IsActive
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteAccount removes an account. Self-deletion is rejected.
func (s *UserService) DeleteAccount(ctx context.Context, actor *domain.User, userID string) error {
	if userID == actor.ID {
		return apperrors.NewValidationError("cannot delete your own account", nil)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return s.mapUserErr(err, userID)
	}
	return nil
}

func (s *UserService) mapUserErr(err error, userID string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
	}
	return apperrors.MapError(err)
}
