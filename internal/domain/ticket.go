package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketStatuses lists every valid status in display order.
var TicketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusInProgress,
	TicketStatusResolved,
	TicketStatusClosed,
}

// Valid reports whether the status is a member of the enum.
func (s TicketStatus) Valid() bool {
	for _, candidate := range TicketStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// TicketPriorities lists every valid priority in escalation order.
var TicketPriorities = []TicketPriority{
	TicketPriorityLow,
	TicketPriorityMedium,
	TicketPriorityHigh,
	TicketPriorityUrgent,
}

// Valid reports whether the priority is a member of the enum.
func (p TicketPriority) Valid() bool {
	for _, candidate := range TicketPriorities {
		if p == candidate {
			return true
		}
	}
	return false
}

// VoteType identifies the direction of a ticket vote.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// Attachment stores metadata for a file attached to a ticket.
type Attachment struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
}

// Ticket is the aggregate for support requests. AgentID and AgentEmail are
// set together or not at all; ReplyCount only ever grows.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Status      TicketStatus
	Category    string
	Priority    TicketPriority
	UserID      string
	UserEmail   string
	AgentID     *string
	AgentEmail  *string
	Attachments []Attachment
	Tags        []string
	Upvotes     int
	Downvotes   int
	ReplyCount  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Assigned reports whether an agent has custody of the ticket.
func (t *Ticket) Assigned() bool {
	return t.AgentID != nil && *t.AgentID != ""
}
