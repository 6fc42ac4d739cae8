package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/events"
	"github.com/quickdesk/helpdesk-api/internal/repository/memory"
	apperrors "github.com/quickdesk/helpdesk-api/pkg/util"
)

type ticketFixture struct {
	store      *memory.Store
	service    *TicketService
	dispatcher events.Dispatcher
	events     *[]events.Event
	endUser    *domain.User
	agent      *domain.User
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()

	store := memory.NewStore()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	store.SetClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	})
	store.SeedDefaultCategories()

	var published []events.Event
	dispatcher := events.NewInMemoryDispatcher()
	for _, eventType := range []events.EventType{
		events.EventTicketCreated,
		events.EventTicketStatusChanged,
		events.EventTicketAssigned,
		events.EventTicketReplyAdded,
	} {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			published = append(published, event)
			return nil
		})
	}

	users := memory.NewUserRepository(store)
	endUser := &domain.User{Email: "rita@example.com", Role: domain.RoleEndUser, IsActive: true}
	require.NoError(t, users.Create(context.Background(), endUser))
	agent := &domain.User{Email: "sam@example.com", Role: domain.RoleAgent, IsActive: true}
	require.NoError(t, users.Create(context.Background(), agent))

	svc := NewTicketService(TicketDependencies{
		TicketRepo:   memory.NewTicketRepository(store),
		ReplyRepo:    memory.NewReplyRepository(store),
		ShareRepo:    memory.NewShareRepository(store),
		CategoryRepo: memory.NewCategoryRepository(store),
		UserRepo:     users,
		Dispatcher:   dispatcher,
	})

	return &ticketFixture{
		store:      store,
		service:    svc,
		dispatcher: dispatcher,
		events:     &published,
		endUser:    endUser,
		agent:      agent,
	}
}

func (f *ticketFixture) createTicket(t *testing.T, input TicketCreateInput) *domain.Ticket {
	t.Helper()
	if input.Title == "" {
		input.Title = "Printer is on fire"
	}
	if input.Description == "" {
		input.Description = "Smoke is coming out of the tray."
	}
	if input.Category == "" {
		input.Category = "technical"
	}
	ticket, err := f.service.CreateTicket(context.Background(), f.endUser, input)
	require.NoError(t, err)
	return ticket
}

func TestCreateTicketValidation(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input TicketCreateInput
	}{
		{"short title", TicketCreateInput{Title: "  ab  ", Description: "long enough text", Category: "technical"}},
		{"short description", TicketCreateInput{Title: "Valid title", Description: " too short", Category: "technical"}},
		{"unknown category", TicketCreateInput{Title: "Valid title", Description: "long enough text", Category: "nonsense"}},
		{"invalid priority", TicketCreateInput{Title: "Valid title", Description: "long enough text", Category: "technical", Priority: "critical"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.CreateTicket(ctx, f.endUser, tc.input)
			require.Error(t, err)
			domainErr := apperrors.ToDomainError(err)
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		})
	}
}

func TestCreateTicketDefaults(t *testing.T) {
	f := newTicketFixture(t)

	ticket := f.createTicket(t, TicketCreateInput{})

	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, f.endUser.ID, ticket.UserID)
	assert.Equal(t, f.endUser.Email, ticket.UserEmail)
	assert.Nil(t, ticket.AgentID)
	assert.Zero(t, ticket.ReplyCount)
	assert.NotEmpty(t, ticket.ID)

	require.Len(t, *f.events, 1)
	assert.Equal(t, events.EventTicketCreated, (*f.events)[0].Type)
}

func TestCreateTicketInactiveCategoryRejected(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	categories := memory.NewCategoryRepository(f.store)
	all, err := categories.List(ctx, false)
	require.NoError(t, err)
	var technical *domain.Category
	for i := range all {
		if all[i].Name == "technical" {
			technical = &all[i]
		}
	}
	require.NotNil(t, technical)
	technical.IsActive = false
	require.NoError(t, categories.Update(ctx, technical))

	_, err = f.service.CreateTicket(ctx, f.endUser, TicketCreateInput{
		Title:       "Valid title",
		Description: "long enough text",
		Category:    "technical",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestAgentCreatesTicketOnBehalf(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	ticket, err := f.service.CreateTicket(ctx, f.agent, TicketCreateInput{
		Title:       "Phone reset request",
		Description: "Customer called in asking for a reset.",
		Category:    "general",
		UserEmail:   "rita@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, f.endUser.ID, ticket.UserID)
	assert.Equal(t, "rita@example.com", ticket.UserEmail)
	require.NotNil(t, ticket.AgentID)
	assert.Equal(t, f.agent.ID, *ticket.AgentID)
	assert.Equal(t, domain.TicketStatusInProgress, ticket.Status)
}

func TestAgentCreatesTicketForUnknownEmail(t *testing.T) {
	f := newTicketFixture(t)

	ticket, err := f.service.CreateTicket(context.Background(), f.agent, TicketCreateInput{
		Title:       "Walk-in request",
		Description: "No account on file for this customer.",
		Category:    "general",
		UserEmail:   "stranger@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, PlaceholderUserID, ticket.UserID)
	assert.Equal(t, "stranger@example.com", ticket.UserEmail)

	_, err = f.service.CreateTicket(context.Background(), f.agent, TicketCreateInput{
		Title:       "Missing email",
		Description: "Agent forgot the customer email.",
		Category:    "general",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestUpdateStatusClaimsUnassignedTicket(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, TicketCreateInput{})

	updated, err := f.service.UpdateStatus(ctx, f.agent, ticket.ID, domain.TicketStatusResolved)
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusResolved, updated.Status)
	require.NotNil(t, updated.AgentID)
	assert.Equal(t, f.agent.ID, *updated.AgentID)

	var statusEvents int
	for _, event := range *f.events {
		if event.Type == events.EventTicketStatusChanged {
			statusEvents++
		}
	}
	assert.Equal(t, 1, statusEvents)
}

func TestUpdateStatusNoopEmitsNothing(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, TicketCreateInput{})

	_, err := f.service.UpdateStatus(ctx, f.agent, ticket.ID, domain.TicketStatusOpen)
	require.NoError(t, err)

	for _, event := range *f.events {
		assert.NotEqual(t, events.EventTicketStatusChanged, event.Type)
	}
}

func TestUpdateStatusErrors(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, TicketCreateInput{})

	_, err := f.service.UpdateStatus(ctx, f.agent, ticket.ID, "escalated")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = f.service.UpdateStatus(ctx, f.agent, "missing-id", domain.TicketStatusClosed)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestAssignForcesInProgress(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, TicketCreateInput{})

	assigned, err := f.service.Assign(ctx, f.agent, ticket.ID, "", "")
	require.NoError(t, err)

	require.NotNil(t, assigned.AgentID)
	assert.Equal(t, f.agent.ID, *assigned.AgentID)
	assert.Equal(t, domain.TicketStatusInProgress, assigned.Status)

	var sawAssigned bool
	for _, event := range *f.events {
		if event.Type == events.EventTicketAssigned {
			sawAssigned = true
		}
	}
	assert.True(t, sawAssigned)
}

func TestAddReplyIncrementsCountAndNotifies(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, TicketCreateInput{})

	reply, err := f.service.AddReply(ctx, f.agent, ticket.ID, "We are looking into it.")
	require.NoError(t, err)
	assert.True(t, reply.IsAgent)
	assert.Equal(t, f.agent.Email, reply.UserEmail)

	refreshed, err := f.service.GetTicket(ctx, f.agent, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed.ReplyCount)

	var replyEvents int
	for _, event := range *f.events {
		if event.Type == events.EventTicketReplyAdded {
			replyEvents++
		}
	}
	assert.Equal(t, 1, replyEvents)
}

func TestOwnerReplyDoesNotNotify(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, TicketCreateInput{})

	_, err := f.service.AddReply(ctx, f.endUser, ticket.ID, "Any update on this?")
	require.NoError(t, err)

	for _, event := range *f.events {
		assert.NotEqual(t, events.EventTicketReplyAdded, event.Type)
	}

	refreshed, err := f.service.GetTicket(ctx, f.endUser, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed.ReplyCount)
}

func TestReplyAccessDeniedForStranger(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, TicketCreateInput{})

	users := memory.NewUserRepository(f.store)
	stranger := &domain.User{Email: "nosy@example.com", Role: domain.RoleEndUser, IsActive: true}
	require.NoError(t, users.Create(ctx, stranger))

	_, err := f.service.AddReply(ctx, stranger, ticket.ID, "Let me in")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	_, err = f.service.GetTicket(ctx, stranger, ticket.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestShareValidation(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, TicketCreateInput{})

	_, err := f.service.Share(ctx, f.agent, ticket.ID, nil, "take a look")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	share, err := f.service.Share(ctx, f.agent, ticket.ID, []string{"agent-2"}, "take a look")
	require.NoError(t, err)
	assert.Equal(t, f.agent.ID, share.SharedBy)
	assert.Equal(t, []string{"agent-2"}, share.SharedWith)

	_, err = f.service.Share(ctx, f.agent, "missing-id", []string{"agent-2"}, "")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestSharedTicketsForAgent(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	first := f.createTicket(t, TicketCreateInput{Title: "First issue"})
	second := f.createTicket(t, TicketCreateInput{Title: "Second issue"})

	_, err := f.service.Share(ctx, f.agent, first.ID, []string{"agent-2"}, "")
	require.NoError(t, err)
	_, err = f.service.Share(ctx, f.agent, second.ID, []string{"agent-2", "agent-3"}, "")
	require.NoError(t, err)

	recipient := &domain.User{ID: "agent-2", Email: "lee@example.com", Role: domain.RoleAgent}
	shares, tickets, err := f.service.SharedTickets(ctx, recipient)
	require.NoError(t, err)
	assert.Len(t, shares, 2)
	assert.Len(t, tickets, 2)
	// most recent hand-off first
	assert.Equal(t, second.ID, shares[0].TicketID)
}

func TestVoteCounters(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, TicketCreateInput{})
	before, err := f.service.GetTicket(ctx, f.endUser, ticket.ID)
	require.NoError(t, err)

	require.NoError(t, f.service.Vote(ctx, ticket.ID, domain.VoteUp))
	require.NoError(t, f.service.Vote(ctx, ticket.ID, domain.VoteUp))
	require.NoError(t, f.service.Vote(ctx, ticket.ID, domain.VoteDown))

	after, err := f.service.GetTicket(ctx, f.endUser, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.Upvotes)
	assert.Equal(t, 1, after.Downvotes)
	// votes never reorder recency
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)

	err = f.service.Vote(ctx, ticket.ID, "sideways")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	err = f.service.Vote(ctx, "missing-id", domain.VoteUp)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
