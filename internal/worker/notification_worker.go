package worker

import (
	"github.com/quickdesk/helpdesk-api/internal/events"
	"github.com/quickdesk/helpdesk-api/internal/service"
)

// StartNotificationWorker subscribes the notification emitter to the ticket
// lifecycle events it cares about.
func StartNotificationWorker(dispatcher events.Dispatcher, notifications *service.NotificationService) {
	if dispatcher == nil || notifications == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, notifications.HandleTicketCreated)
	dispatcher.Subscribe(events.EventTicketStatusChanged, notifications.HandleStatusChanged)
	dispatcher.Subscribe(events.EventTicketReplyAdded, notifications.HandleReplyAdded)
}
