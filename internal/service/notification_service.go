package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/events"
	"github.com/quickdesk/helpdesk-api/internal/repository"
	apperrors "github.com/quickdesk/helpdesk-api/pkg/util"
)

const defaultPendingLimit = 50

// NotificationService turns ticket lifecycle events into outbound queue
// records. It never sends anything itself; delivery is a downstream concern.
type NotificationService struct {
	queue  repository.NotificationRepository
	logger *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(queue repository.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{queue: queue, logger: logger}
}

// HandleTicketCreated enqueues the confirmation record for the requester.
func (s *NotificationService) HandleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Type)
	}
	return s.enqueue(ctx, &domain.Notification{
		To:       payload.RequesterEmail,
		Subject:  fmt.Sprintf("Ticket received: %s", payload.Title),
		Body:     fmt.Sprintf("Your ticket %q has been filed under %s with %s priority. Our team will get back to you shortly.", payload.Title, payload.Category, payload.Priority),
		Type:     domain.NotificationTicketCreated,
		TicketID: event.TicketID,
	})
}

// HandleStatusChanged enqueues the status update record for the requester.
// The emitter only publishes when the status actually changed.
func (s *NotificationService) HandleStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Type)
	}
	return s.enqueue(ctx, &domain.Notification{
		To:       payload.RequesterEmail,
		Subject:  fmt.Sprintf("Ticket status updated: %s", payload.Title),
		Body:     fmt.Sprintf("Your ticket %q moved from %s to %s.", payload.Title, payload.OldStatus, payload.NewStatus),
		Type:     domain.NotificationStatusChanged,
		TicketID: event.TicketID,
	})
}

// HandleReplyAdded enqueues the new-reply record for the requester. The
// emitter suppresses the event when the requester themselves replied.
func (s *NotificationService) HandleReplyAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketReplyAddedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Type)
	}
	return s.enqueue(ctx, &domain.Notification{
		To:       payload.RequesterEmail,
		Subject:  fmt.Sprintf("New reply on: %s", payload.Title),
		Body:     fmt.Sprintf("%s replied to your ticket: %s", payload.AuthorEmail, payload.MessagePreview),
		Type:     domain.NotificationReplyAdded,
		TicketID: event.TicketID,
	})
}

// Pending exposes the undelivered backlog for the ops surface.
func (s *NotificationService) Pending(ctx context.Context, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = defaultPendingLimit
	}
	records, err := s.queue.ListPending(ctx, limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return records, nil
}

// MarkSent records a delivery, removing the record from the backlog.
func (s *NotificationService) MarkSent(ctx context.Context, id string) error {
	if err := s.queue.MarkSent(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("notification", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *NotificationService) enqueue(ctx context.Context, notification *domain.Notification) error {
	if notification.To == "" {
		return nil
	}
	if err := s.queue.Enqueue(ctx, notification); err != nil {
		s.logger.Error("failed to enqueue notification",
			zap.String("type", string(notification.Type)),
			zap.String("ticket_id", notification.TicketID),
			zap.Error(err),
		)
		return err
	}
	s.logger.Info("notification enqueued",
		zap.String("type", string(notification.Type)),
		zap.String("ticket_id", notification.TicketID),
	)
	return nil
}
