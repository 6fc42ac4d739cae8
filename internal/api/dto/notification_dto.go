package dto

import (
	"time"

	"github.com/quickdesk/helpdesk-api/internal/domain"
)

// NotificationResponse is the outbound queue record shape.
type NotificationResponse struct {
	ID        string                  `json:"id"`
	To        string                  `json:"to"`
	Subject   string                  `json:"subject"`
	Body      string                  `json:"body"`
	Type      domain.NotificationType `json:"type"`
	TicketID  string                  `json:"ticketId"`
	Sent      bool                    `json:"sent"`
	CreatedAt time.Time               `json:"createdAt"`
}

// NotificationListResponse carries the pending backlog.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// NewNotificationResponses maps a slice, never returning nil.
func NewNotificationResponses(records []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(records))
	for _, record := range records {
		out = append(out, NotificationResponse{
			ID:        record.ID,
			To:        record.To,
			Subject:   record.Subject,
			Body:      record.Body,
			Type:      record.Type,
			TicketID:  record.TicketID,
			Sent:      record.Sent,
			CreatedAt: record.CreatedAt,
		})
	}
	return out
}
