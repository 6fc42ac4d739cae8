package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quickdesk/helpdesk-api/internal/domain"
)

func TestDashboardAggregatesUserScope(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		f.createTicket(t, TicketCreateInput{Title: "Issue number " + string(rune('A'+i))})
	}
	tickets, _, err := f.service.ListTickets(ctx, f.endUser, TicketListInput{})
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(ctx, f.agent, tickets[0].ID, domain.TicketStatusResolved)
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(ctx, f.agent, tickets[1].ID, domain.TicketStatusClosed)
	require.NoError(t, err)
	_, err = f.service.Assign(ctx, f.agent, tickets[2].ID, "", "")
	require.NoError(t, err)

	svc := NewDashboardService(f.service.tickets, nil, 0, zap.NewNop())
	dashboard, err := svc.ForUser(ctx, f.endUser.ID)
	require.NoError(t, err)

	assert.Equal(t, 7, dashboard.Stats.Total)
	assert.Equal(t, 4, dashboard.Stats.Open)
	assert.Equal(t, 1, dashboard.Stats.InProgress)
	assert.Equal(t, 1, dashboard.Stats.Resolved)
	assert.Equal(t, 1, dashboard.Stats.Closed)
	assert.Len(t, dashboard.Recent, 5)
	// user recency is creation order, newest first
	for i := 1; i < len(dashboard.Recent); i++ {
		assert.False(t, dashboard.Recent[i-1].CreatedAt.Before(dashboard.Recent[i].CreatedAt))
	}
}

func TestDashboardAgentScopes(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		f.createTicket(t, TicketCreateInput{Title: "Queue item " + string(rune('A'+i))})
	}
	tickets, _, err := f.service.ListTickets(ctx, f.agent, TicketListInput{})
	require.NoError(t, err)
	_, err = f.service.Assign(ctx, f.agent, tickets[0].ID, "", "")
	require.NoError(t, err)

	svc := NewDashboardService(f.service.tickets, nil, 0, zap.NewNop())

	dashboard, err := svc.ForAgent(ctx, f.agent.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, dashboard.All.Stats.Total)
	assert.Equal(t, 1, dashboard.My.Stats.Total)
	assert.Equal(t, 1, dashboard.My.Stats.InProgress)
	assert.Len(t, dashboard.My.Recent, 1)
	assert.Equal(t, tickets[0].ID, dashboard.My.Recent[0].ID)
	// queue recency is last update, so the assigned ticket leads
	require.NotEmpty(t, dashboard.All.Recent)
	assert.Equal(t, tickets[0].ID, dashboard.All.Recent[0].ID)
}

func TestDashboardEmptyScope(t *testing.T) {
	f := newTicketFixture(t)
	svc := NewDashboardService(f.service.tickets, nil, 0, zap.NewNop())

	dashboard, err := svc.ForUser(context.Background(), f.endUser.ID)
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{}, dashboard.Stats)
	assert.NotNil(t, dashboard.Recent)
	assert.Empty(t, dashboard.Recent)
}

func TestDashboardCachesAndInvalidates(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	svc := NewDashboardService(f.service.tickets, client, 30*time.Second, zap.NewNop())
	svc.RegisterInvalidation(f.dispatcher)

	f.createTicket(t, TicketCreateInput{})
	first, err := svc.ForUser(ctx, f.endUser.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Stats.Total)

	// a new ticket bumps the generation, so the stale entry is never served
	f.createTicket(t, TicketCreateInput{Title: "Another problem"})
	second, err := svc.ForUser(ctx, f.endUser.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Stats.Total)

	// without a mutation the cached copy is reused
	again, err := svc.ForUser(ctx, f.endUser.ID)
	require.NoError(t, err)
	assert.Equal(t, second, again)
}

func TestDashboardSurvivesRedisOutage(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	svc := NewDashboardService(f.service.tickets, client, 30*time.Second, zap.NewNop())

	f.createTicket(t, TicketCreateInput{})
	dashboard, err := svc.ForUser(ctx, f.endUser.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.Stats.Total)
}
