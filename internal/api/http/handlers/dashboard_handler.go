package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickdesk/helpdesk-api/internal/api/dto"
	"github.com/quickdesk/helpdesk-api/internal/auth"
	"github.com/quickdesk/helpdesk-api/internal/service"
	apperrors "github.com/quickdesk/helpdesk-api/pkg/util"
)

// DashboardHandler serves per-scope ticket summaries.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// UserDashboard GET /user/dashboard. Summarizes the caller's own tickets.
func (h *DashboardHandler) UserDashboard(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	dashboard, err := h.service.ForUser(c.Context(), principal.ID())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDashboardResponse(dashboard))
}

// AgentDashboard GET /agent/dashboard. Summarizes the whole queue and the
// agent's own assignments in one payload.
func (h *DashboardHandler) AgentDashboard(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	dashboard, err := h.service.ForAgent(c.Context(), principal.ID())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAgentDashboardResponse(dashboard))
}
