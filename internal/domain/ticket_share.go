package domain

import "time"

// TicketShare records an agent handing a ticket to other agents for
// visibility. Shares are append-only and looked up by membership of
// SharedWith.
type TicketShare struct {
	ID         string
	TicketID   string
	SharedBy   string
	SharedWith []string
	Note       string
	SharedAt   time.Time
}
