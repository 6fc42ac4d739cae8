package domain

import "time"

// TicketReply captures one message in a ticket thread. Replies are immutable
// once created and are displayed oldest first.
type TicketReply struct {
	ID        string
	TicketID  string
	UserID    string
	UserEmail string
	Message   string
	IsAgent   bool
	CreatedAt time.Time
}
