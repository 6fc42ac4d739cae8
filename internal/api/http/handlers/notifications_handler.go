package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/quickdesk/helpdesk-api/internal/api/dto"
	"github.com/quickdesk/helpdesk-api/internal/service"
)

// NotificationsHandler serves the outbound queue to the delivery consumer.
type NotificationsHandler struct {
	service *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService}
}

// ListPending GET /admin/notifications. Returns the undelivered backlog,
// oldest first.
func (h *NotificationsHandler) ListPending(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	records, err := h.service.Pending(c.Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.NotificationListResponse{
		Notifications: dto.NewNotificationResponses(records),
	})
}

// MarkSent PUT /admin/notifications/:id/sent. Acknowledges a delivery.
func (h *NotificationsHandler) MarkSent(c *fiber.Ctx) error {
	if err := h.service.MarkSent(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "sent"})
}
