package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickdesk/helpdesk-api/internal/domain"
)

func seedQueryTickets(t *testing.T, f *ticketFixture) {
	t.Helper()
	ctx := context.Background()

	specs := []struct {
		title    string
		category string
		priority domain.TicketPriority
	}{
		{"VPN connection drops", "technical", domain.TicketPriorityHigh},
		{"Invoice shows wrong amount", "billing", domain.TicketPriorityMedium},
		{"Request dark mode", "feature_request", domain.TicketPriorityLow},
		{"App crashes on login", "bug_report", domain.TicketPriorityUrgent},
		{"VPN client update needed", "technical", domain.TicketPriorityLow},
	}
	for _, spec := range specs {
		_, err := f.service.CreateTicket(ctx, f.endUser, TicketCreateInput{
			Title:       spec.title,
			Description: "Details for " + spec.title + " go here.",
			Category:    spec.category,
			Priority:    spec.priority,
		})
		require.NoError(t, err)
	}
}

func TestListTicketsScopesEndUserToOwnTickets(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	seedQueryTickets(t, f)

	// a second user's ticket must never leak into the first user's listing
	other := f.agent
	_, err := f.service.CreateTicket(ctx, other, TicketCreateInput{
		Title:       "Filed for someone else",
		Description: "Agent-filed ticket for another customer.",
		Category:    "general",
		UserEmail:   "elsewhere@example.com",
	})
	require.NoError(t, err)

	tickets, pagination, err := f.service.ListTickets(ctx, f.endUser, TicketListInput{})
	require.NoError(t, err)
	assert.Equal(t, 5, pagination.Total)
	for _, ticket := range tickets {
		assert.Equal(t, f.endUser.ID, ticket.UserID)
	}

	all, pagination, err := f.service.ListTickets(ctx, f.agent, TicketListInput{})
	require.NoError(t, err)
	assert.Equal(t, 6, pagination.Total)
	assert.Len(t, all, 6)
}

func TestListTicketsAgentQueueNarrowing(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	seedQueryTickets(t, f)

	tickets, _, err := f.service.ListTickets(ctx, f.agent, TicketListInput{Queue: "my"})
	require.NoError(t, err)
	assert.Empty(t, tickets)

	first, _, err := f.service.ListTickets(ctx, f.agent, TicketListInput{})
	require.NoError(t, err)
	_, err = f.service.Assign(ctx, f.agent, first[0].ID, "", "")
	require.NoError(t, err)

	mine, pagination, err := f.service.ListTickets(ctx, f.agent, TicketListInput{Queue: "my"})
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Total)
	require.Len(t, mine, 1)
	assert.Equal(t, first[0].ID, mine[0].ID)
}

func TestListTicketsSearchCountedBeforePagination(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	seedQueryTickets(t, f)

	tickets, pagination, err := f.service.ListTickets(ctx, f.endUser, TicketListInput{
		Search: "vpn",
		Limit:  1,
	})
	require.NoError(t, err)
	// total reflects every match, not just the returned page
	assert.Equal(t, 2, pagination.Total)
	assert.Equal(t, 2, pagination.TotalPages)
	assert.Len(t, tickets, 1)
}

func TestListTicketsEqualityFilters(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	seedQueryTickets(t, f)

	byCategory, pagination, err := f.service.ListTickets(ctx, f.endUser, TicketListInput{Category: "technical"})
	require.NoError(t, err)
	assert.Equal(t, 2, pagination.Total)
	for _, ticket := range byCategory {
		assert.Equal(t, "technical", ticket.Category)
	}

	byPriority, pagination, err := f.service.ListTickets(ctx, f.endUser, TicketListInput{Priority: "low"})
	require.NoError(t, err)
	assert.Equal(t, 2, pagination.Total)
	for _, ticket := range byPriority {
		assert.Equal(t, domain.TicketPriorityLow, ticket.Priority)
	}

	combined, pagination, err := f.service.ListTickets(ctx, f.endUser, TicketListInput{
		Category: "technical",
		Priority: "low",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Total)
	require.Len(t, combined, 1)
	assert.Equal(t, "VPN client update needed", combined[0].Title)
}

func TestListTicketsSortWhitelistAndFallback(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	seedQueryTickets(t, f)

	byTitle, _, err := f.service.ListTickets(ctx, f.endUser, TicketListInput{
		SortBy:    "title",
		SortOrder: "asc",
	})
	require.NoError(t, err)
	require.Len(t, byTitle, 5)
	for i := 1; i < len(byTitle); i++ {
		assert.LessOrEqual(t, byTitle[i-1].Title, byTitle[i].Title)
	}

	// unknown sort field falls back to recency, newest first
	fallback, _, err := f.service.ListTickets(ctx, f.endUser, TicketListInput{SortBy: "upvotes; DROP TABLE tickets"})
	require.NoError(t, err)
	require.Len(t, fallback, 5)
	for i := 1; i < len(fallback); i++ {
		assert.False(t, fallback[i-1].CreatedAt.Before(fallback[i].CreatedAt))
	}
}

func TestListTicketsPaginationClamps(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	seedQueryTickets(t, f)

	tickets, pagination, err := f.service.ListTickets(ctx, f.endUser, TicketListInput{Page: -3, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 10, pagination.Limit)
	assert.Len(t, tickets, 5)

	second, pagination, err := f.service.ListTickets(ctx, f.endUser, TicketListInput{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, pagination.Total)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.Len(t, second, 2)

	beyond, pagination, err := f.service.ListTickets(ctx, f.endUser, TicketListInput{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond)
	assert.Equal(t, 5, pagination.Total)
}

func TestListTicketsStableOrderAcrossPages(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	seedQueryTickets(t, f)

	var paged []string
	for page := 1; page <= 3; page++ {
		tickets, _, err := f.service.ListTickets(ctx, f.endUser, TicketListInput{
			Page:      page,
			Limit:     2,
			SortBy:    "title",
			SortOrder: "asc",
		})
		require.NoError(t, err)
		for _, ticket := range tickets {
			paged = append(paged, ticket.ID)
		}
	}

	all, _, err := f.service.ListTickets(ctx, f.endUser, TicketListInput{
		SortBy:    "title",
		SortOrder: "asc",
	})
	require.NoError(t, err)
	var ids []string
	for _, ticket := range all {
		ids = append(ids, ticket.ID)
	}
	assert.Equal(t, ids, paged)
}
