package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/events"
	"github.com/quickdesk/helpdesk-api/internal/repository"
	"github.com/quickdesk/helpdesk-api/internal/repository/memory"
	apperrors "github.com/quickdesk/helpdesk-api/pkg/util"
)

func newNotificationFixture(t *testing.T) (*ticketFixture, *NotificationService, repository.NotificationRepository) {
	t.Helper()
	f := newTicketFixture(t)
	queue := memory.NewNotificationRepository(f.store)
	svc := NewNotificationService(queue, zap.NewNop())
	f.dispatcher.Subscribe(events.EventTicketCreated, svc.HandleTicketCreated)
	f.dispatcher.Subscribe(events.EventTicketStatusChanged, svc.HandleStatusChanged)
	f.dispatcher.Subscribe(events.EventTicketReplyAdded, svc.HandleReplyAdded)
	return f, svc, queue
}

func TestTicketCreationEnqueuesConfirmation(t *testing.T) {
	f, notifications, _ := newNotificationFixture(t)
	ctx := context.Background()

	ticket := f.createTicket(t, TicketCreateInput{})

	pending, err := notifications.Pending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	record := pending[0]
	assert.Equal(t, domain.NotificationTicketCreated, record.Type)
	assert.Equal(t, f.endUser.Email, record.To)
	assert.Equal(t, ticket.ID, record.TicketID)
	assert.False(t, record.Sent)
	assert.Contains(t, record.Subject, ticket.Title)
}

func TestStatusChangeEnqueuesOnlyOnRealChange(t *testing.T) {
	f, notifications, _ := newNotificationFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, TicketCreateInput{})

	_, err := f.service.UpdateStatus(ctx, f.agent, ticket.ID, domain.TicketStatusOpen)
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(ctx, f.agent, ticket.ID, domain.TicketStatusResolved)
	require.NoError(t, err)

	pending, err := notifications.Pending(ctx, 10)
	require.NoError(t, err)

	var statusRecords []domain.Notification
	for _, record := range pending {
		if record.Type == domain.NotificationStatusChanged {
			statusRecords = append(statusRecords, record)
		}
	}
	require.Len(t, statusRecords, 1)
	assert.Contains(t, statusRecords[0].Body, "open")
	assert.Contains(t, statusRecords[0].Body, "resolved")
}

func TestAgentReplyEnqueuesButOwnerReplyDoesNot(t *testing.T) {
	f, notifications, _ := newNotificationFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, TicketCreateInput{})

	_, err := f.service.AddReply(ctx, f.endUser, ticket.ID, "Adding more context.")
	require.NoError(t, err)
	_, err = f.service.AddReply(ctx, f.agent, ticket.ID, "Thanks, on it.")
	require.NoError(t, err)

	pending, err := notifications.Pending(ctx, 10)
	require.NoError(t, err)

	var replyRecords []domain.Notification
	for _, record := range pending {
		if record.Type == domain.NotificationReplyAdded {
			replyRecords = append(replyRecords, record)
		}
	}
	require.Len(t, replyRecords, 1)
	assert.Equal(t, f.endUser.Email, replyRecords[0].To)
	assert.Contains(t, replyRecords[0].Body, f.agent.Email)
}

func TestMarkSentDrainsQueue(t *testing.T) {
	f, notifications, queue := newNotificationFixture(t)
	ctx := context.Background()
	f.createTicket(t, TicketCreateInput{})

	pending, err := notifications.Pending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, notifications.MarkSent(ctx, pending[0].ID))

	pending, err = notifications.Pending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	err = notifications.MarkSent(ctx, "missing-id")
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	err = queue.MarkSent(ctx, "missing-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
