package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickdesk/helpdesk-api/internal/api/dto"
	"github.com/quickdesk/helpdesk-api/internal/auth"
	"github.com/quickdesk/helpdesk-api/internal/service"
	apperrors "github.com/quickdesk/helpdesk-api/pkg/util"
)

// AgentTicketsHandler serves the triage surface for agents and admins.
type AgentTicketsHandler struct {
	service *service.TicketService
}

// NewAgentTicketsHandler constructs handler.
func NewAgentTicketsHandler(ticketService *service.TicketService) *AgentTicketsHandler {
	return &AgentTicketsHandler{service: ticketService}
}

// CreateTicket POST /agent/tickets. Files a ticket on a customer's behalf;
// the ticket lands assigned to the acting agent.
func (h *AgentTicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.CreateTicket(c.Context(), principal.User, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Attachments: req.Attachments,
		Tags:        req.Tags,
		UserEmail:   req.UserEmail,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTicketResponse(ticket))
}

// ListTickets GET /agent/tickets. queue=my narrows to the agent's own
// assignments; anything else shows the whole queue.
func (h *AgentTicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	tickets, pagination, err := h.service.ListTickets(c.Context(), principal.User, parseTicketListQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketListResponse{
		Tickets:    dto.NewTicketResponses(tickets),
		Pagination: pagination,
	})
}

// UpdateStatus PUT /tickets/:id/status.
func (h *AgentTicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.UpdateStatus(c.Context(), principal.User, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// Assign PUT /tickets/:id/assign.
func (h *AgentTicketsHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Assign(c.Context(), principal.User, c.Params("id"), req.AgentID, req.AgentEmail)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// Share POST /tickets/:id/share.
func (h *AgentTicketsHandler) Share(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ShareTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	share, err := h.service.Share(c.Context(), principal.User, c.Params("id"), req.SharedWith, req.Note)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewShareResponse(share))
}

// SharedWithMe GET /agent/shared-tickets.
func (h *AgentTicketsHandler) SharedWithMe(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	shares, tickets, err := h.service.SharedTickets(c.Context(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(dto.SharedTicketsResponse{
		Shares:  dto.NewShareResponses(shares),
		Tickets: dto.NewTicketResponses(tickets),
	})
}
