package events

import (
	"time"

	"github.com/quickdesk/helpdesk-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketReplyAdded    EventType = "ticket_reply_added"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string          `json:"user_id"`
	Email  string          `json:"email"`
	Role   domain.UserRole `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title          string                `json:"title"`
	Category       string                `json:"category"`
	Priority       domain.TicketPriority `json:"priority"`
	RequesterEmail string                `json:"requester_email"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	Title          string              `json:"title"`
	OldStatus      domain.TicketStatus `json:"old_status"`
	NewStatus      domain.TicketStatus `json:"new_status"`
	RequesterEmail string              `json:"requester_email"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	Title          string `json:"title"`
	AgentID        string `json:"agent_id"`
	AgentEmail     string `json:"agent_email"`
	RequesterEmail string `json:"requester_email"`
}

// TicketReplyAddedPayload payload.
type TicketReplyAddedPayload struct {
	Title          string `json:"title"`
	ReplyID        string `json:"reply_id"`
	AuthorEmail    string `json:"author_email"`
	IsAgent        bool   `json:"is_agent"`
	RequesterEmail string `json:"requester_email"`
	MessagePreview string `json:"message_preview"`
}
