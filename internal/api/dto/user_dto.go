package dto

import (
	"time"

	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/service"
)

// RegisterRequest payload for self-service signup.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserRequest payload for the admin console.
type CreateUserRequest struct {
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	DisplayName string          `json:"displayName"`
	Role        domain.UserRole `json:"role"`
}

// UpdateProfileRequest payload. Omitted fields are left untouched.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	Phone       *string `json:"phone"`
	Company     *string `json:"company"`
	Timezone    *string `json:"timezone"`
	Avatar      *string `json:"avatar"`
}

// UpdateRoleRequest payload for admin role edits. Permissions, when present,
// replace the account's explicit grants.
type UpdateRoleRequest struct {
	Role        domain.UserRole     `json:"role"`
	Permissions []domain.Permission `json:"permissions"`
}

// UpdateUserStatusRequest payload toggling an account's active flag.
type UpdateUserStatusRequest struct {
	IsActive bool `json:"isActive"`
}

// UserResponse is the outbound account shape. The password hash never
// crosses this boundary.
type UserResponse struct {
	ID          string              `json:"id"`
	Email       string              `json:"email"`
	Role        domain.UserRole     `json:"role"`
	DisplayName string              `json:"displayName"`
	Phone       string              `json:"phone,omitempty"`
	Company     string              `json:"company,omitempty"`
	Timezone    string              `json:"timezone,omitempty"`
	Avatar      string              `json:"avatar,omitempty"`
	Permissions []domain.Permission `json:"permissions"`
	IsActive    bool                `json:"isActive"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// AuthResponse pairs the bearer token with the account.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserListResponse carries one account page with its envelope.
type UserListResponse struct {
	Users      []UserResponse     `json:"users"`
	Pagination service.Pagination `json:"pagination"`
}

// NewUserResponse maps a domain account.
func NewUserResponse(user *domain.User) UserResponse {
	permissions := user.Permissions
	if permissions == nil {
		permissions = []domain.Permission{}
	}
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Role:        user.Role,
		DisplayName: user.DisplayName,
		Phone:       user.Phone,
		Company:     user.Company,
		Timezone:    user.Timezone,
		Avatar:      user.Avatar,
		Permissions: permissions,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// NewUserResponses maps a slice, never returning nil.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// NewAuthResponse maps a login/register result.
func NewAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      NewUserResponse(result.User),
	}
}
