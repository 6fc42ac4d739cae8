package domain

import "time"

// NotificationType identifies the lifecycle event behind a notification.
type NotificationType string

const (
	NotificationTicketCreated NotificationType = "ticket_created"
	NotificationStatusChanged NotificationType = "status_changed"
	NotificationReplyAdded    NotificationType = "reply_added"
)

// Notification is one outbound record in the notification queue. Delivery is
// an external consumer's responsibility; this service only enqueues.
type Notification struct {
	ID        string
	To        string
	Subject   string
	Body      string
	Type      NotificationType
	TicketID  string
	Sent      bool
	CreatedAt time.Time
}
