package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickdesk/helpdesk-api/internal/api/dto"
	"github.com/quickdesk/helpdesk-api/internal/auth"
	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/service"
	apperrors "github.com/quickdesk/helpdesk-api/pkg/util"
)

// AccountHandler serves profile and settings self-service.
type AccountHandler struct {
	users *service.UserService
}

// NewAccountHandler constructs handler.
func NewAccountHandler(userService *service.UserService) *AccountHandler {
	return &AccountHandler{users: userService}
}

// Profile GET /profile.
func (h *AccountHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.users.GetProfile(c.Context(), principal.ID())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// UpdateProfile PUT /profile.
func (h *AccountHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.users.UpdateProfile(c.Context(), principal.ID(), service.ProfileUpdate{
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Company:     req.Company,
		Timezone:    req.Timezone,
		Avatar:      req.Avatar,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Settings GET /settings.
func (h *AccountHandler) Settings(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	settings, err := h.users.GetSettings(c.Context(), principal.ID())
	if err != nil {
		return err
	}
	return c.JSON(settings)
}

// UpdateSettings PUT /settings.
func (h *AccountHandler) UpdateSettings(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req domain.UserSettings
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	settings, err := h.users.UpdateSettings(c.Context(), principal.ID(), req)
	if err != nil {
		return err
	}
	return c.JSON(settings)
}
