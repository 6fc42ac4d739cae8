package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/events"
	"github.com/quickdesk/helpdesk-api/internal/repository"
	apperrors "github.com/quickdesk/helpdesk-api/pkg/util"
)

const (
	minTitleLength       = 3
	minDescriptionLength = 10

	// PlaceholderUserID marks tickets filed by an agent for a customer who
	// has no account yet.
	PlaceholderUserID = "agent-created"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	replies    repository.ReplyRepository
	shares     repository.ShareRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	ReplyRepo    repository.ReplyRepository
	ShareRepo    repository.ShareRepository
	CategoryRepo repository.CategoryRepository
	UserRepo     repository.UserRepository
	Dispatcher   events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		replies:    deps.ReplyRepo,
		shares:     deps.ShareRepo,
		categories: deps.CategoryRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// TicketCreateInput describes ticket creation payload. UserEmail is only
// consulted when an agent files the ticket on a customer's behalf.
type TicketCreateInput struct {
	Title       string
	Description string
	Category    string
	Priority    domain.TicketPriority
	Attachments []domain.Attachment
	Tags        []string
	UserEmail   string
}

// TicketListInput describes listing parameters before scope resolution.
type TicketListInput struct {
	Queue     string
	Status    string
	Category  string
	Priority  string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Pagination is the envelope computed over the fully filtered set.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// CreateTicket validates and persists a new ticket. End users file for
// themselves; agents file on behalf of a customer email and take the
// assignment immediately.
func (s *TicketService) CreateTicket(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if len(title) < minTitleLength {
		return nil, apperrors.NewValidationError("title must be at least 3 characters", nil)
	}
	if len(description) < minDescriptionLength {
		return nil, apperrors.NewValidationError("description must be at least 10 characters", nil)
	}
	if err := s.requireActiveCategory(ctx, input.Category); err != nil {
		return nil, err
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority})
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		Status:      domain.TicketStatusOpen,
		Category:    input.Category,
		Priority:    priority,
		Attachments: input.Attachments,
		Tags:        input.Tags,
	}

	switch actor.Role {
	case domain.RoleEndUser:
		ticket.UserID = actor.ID
		ticket.UserEmail = actor.Email
	case domain.RoleAgent, domain.RoleAdmin:
		if strings.TrimSpace(input.UserEmail) == "" {
			return nil, apperrors.NewValidationError("user email is required", nil)
		}
		ticket.UserEmail = input.UserEmail
		ticket.UserID = PlaceholderUserID
		if owner, err := s.users.GetByEmail(ctx, input.UserEmail); err == nil {
			ticket.UserID = owner.ID
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.MapError(err)
		}
		// agent-filed tickets go straight into the agent's queue
		ticket.AgentID = &actor.ID
		ticket.AgentEmail = &actor.Email
		ticket.Status = domain.TicketStatusInProgress
	default:
		return nil, apperrors.NewForbidden("unknown role")
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.publish(ctx, actor, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:          ticket.Title,
			Category:       ticket.Category,
			Priority:       ticket.Priority,
			RequesterEmail: ticket.UserEmail,
		},
	}); err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// ListTickets resolves the actor's scope and returns one deterministic,
// ordered, sliced page. The total always reflects every filter including
// the search term.
func (s *TicketService) ListTickets(ctx context.Context, actor *domain.User, input TicketListInput) ([]domain.Ticket, Pagination, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 10
	}

	filter := repository.TicketFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	agentScope := actor.Role == domain.RoleAgent || actor.Role == domain.RoleAdmin
	if agentScope {
		if input.Queue == "my" {
			filter.AgentID = &actor.ID
		}
		filter.SearchUserEmail = true
	} else {
		filter.UserID = &actor.ID
	}

	if input.Status != "" {
		status := domain.TicketStatus(input.Status)
		filter.Status = &status
	}
	if input.Category != "" {
		filter.Category = &input.Category
	}
	if input.Priority != "" {
		priority := domain.TicketPriority(input.Priority)
		filter.Priority = &priority
	}
	if input.Search != "" {
		filter.Search = &input.Search
	}

	sortBy := input.SortBy
	if !repository.ValidTicketSortField(sortBy) {
		if agentScope {
			sortBy = "updatedAt"
		} else {
			sortBy = "createdAt"
		}
	}
	filter.SortBy = sortBy
	filter.SortDesc = input.SortOrder != "asc"

	tickets, total, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, Pagination{}, apperrors.MapError(err)
	}
	pagination := Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	return tickets, pagination, nil
}

// GetTicket fetches one ticket, enforcing ownership for end users.
func (s *TicketService) GetTicket(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleEndUser && ticket.UserID != actor.ID {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

// UpdateStatus sets a ticket's status. Transitions are deliberately
// unconstrained: an agent may move any ticket to any status. An unassigned
// ticket is claimed by the acting agent as a side effect.
func (s *TicketService) UpdateStatus(ctx context.Context, actor *domain.User, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": newStatus})
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	ticket.Status = newStatus
	if !ticket.Assigned() {
		ticket.AgentID = &actor.ID
		ticket.AgentEmail = &actor.Email
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, s.mapTicketErr(err, ticketID)
	}
	if oldStatus != newStatus {
		if err := s.publish(ctx, actor, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			Payload: events.TicketStatusChangedPayload{
				Title:          ticket.Title,
				OldStatus:      oldStatus,
				NewStatus:      newStatus,
				RequesterEmail: ticket.UserEmail,
			},
		}); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	return ticket, nil
}

// Assign hands a ticket to an agent (the actor by default) and forces the
// status to in_progress.
func (s *TicketService) Assign(ctx context.Context, actor *domain.User, ticketID, agentID, agentEmail string) (*domain.Ticket, error) {
	if agentID == "" {
		agentID = actor.ID
		agentEmail = actor.Email
	}
	if agentEmail == "" {
		return nil, apperrors.NewValidationError("agent email is required", nil)
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	ticket.AgentID = &agentID
	ticket.AgentEmail = &agentEmail
	ticket.Status = domain.TicketStatusInProgress
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, s.mapTicketErr(err, ticketID)
	}
	if err := s.publish(ctx, actor, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Payload: events.TicketAssignedPayload{
			Title:          ticket.Title,
			AgentID:        agentID,
			AgentEmail:     agentEmail,
			RequesterEmail: ticket.UserEmail,
		},
	}); err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// AddReply appends a message to a ticket's thread. Agents may reply to any
// ticket; end users only to their own. The reply count grows by exactly one
// per accepted reply.
func (s *TicketService) AddReply(ctx context.Context, actor *domain.User, ticketID, message string) (*domain.TicketReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperrors.NewValidationError("message is required", nil)
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	isAgent := actor.Role == domain.RoleAgent || actor.Role == domain.RoleAdmin
	if !isAgent && ticket.UserID != actor.ID {
		return nil, apperrors.NewForbidden("access denied")
	}

	reply := &domain.TicketReply{
		TicketID:  ticket.ID,
		UserID:    actor.ID,
		UserEmail: actor.Email,
		Message:   message,
		IsAgent:   isAgent,
	}
	if err := s.replies.Create(ctx, reply); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.tickets.IncrementReplyCount(ctx, ticket.ID); err != nil {
		return nil, s.mapTicketErr(err, ticketID)
	}
	// the ticket owner replying to their own ticket is not news to them
	if actor.ID != ticket.UserID {
		if err := s.publish(ctx, actor, events.Event{
			Type:     events.EventTicketReplyAdded,
			TicketID: ticket.ID,
			Payload: events.TicketReplyAddedPayload{
				Title:          ticket.Title,
				ReplyID:        reply.ID,
				AuthorEmail:    actor.Email,
				IsAgent:        isAgent,
				RequesterEmail: ticket.UserEmail,
				MessagePreview: preview(message, 120),
			},
		}); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	return reply, nil
}

// ListReplies returns the ticket thread oldest first, with the same access
// rule as AddReply.
func (s *TicketService) ListReplies(ctx context.Context, actor *domain.User, ticketID string) ([]domain.TicketReply, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleEndUser && ticket.UserID != actor.ID {
		return nil, apperrors.NewForbidden("access denied")
	}
	replies, err := s.replies.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return replies, nil
}

// Share records a hand-off of a ticket to other agents.
func (s *TicketService) Share(ctx context.Context, actor *domain.User, ticketID string, sharedWith []string, note string) (*domain.TicketShare, error) {
	if len(sharedWith) == 0 {
		return nil, apperrors.NewValidationError("sharedWith must be a non-empty list of agent ids", nil)
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	share := &domain.TicketShare{
		TicketID:   ticket.ID,
		SharedBy:   actor.ID,
		SharedWith: sharedWith,
		Note:       note,
	}
	if err := s.shares.Create(ctx, share); err != nil {
		return nil, apperrors.MapError(err)
	}
	return share, nil
}

// SharedTickets returns shares naming the agent together with the shared
// tickets' details.
func (s *TicketService) SharedTickets(ctx context.Context, actor *domain.User) ([]domain.TicketShare, []domain.Ticket, error) {
	shares, err := s.shares.ListBySharedWith(ctx, actor.ID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	tickets := make([]domain.Ticket, 0, len(shares))
	for _, share := range shares {
		ticket, err := s.tickets.GetByID(ctx, share.TicketID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, nil, apperrors.MapError(err)
		}
		tickets = append(tickets, *ticket)
	}
	return shares, tickets, nil
}

// Vote bumps a ticket's vote counter. Any authenticated caller may vote;
// there is deliberately no ownership check.
func (s *TicketService) Vote(ctx context.Context, ticketID string, vote domain.VoteType) error {
	if vote != domain.VoteUp && vote != domain.VoteDown {
		return apperrors.NewValidationError("vote type must be up or down", map[string]any{"type": vote})
	}
	if err := s.tickets.AddVote(ctx, ticketID, vote); err != nil {
		return s.mapTicketErr(err, ticketID)
	}
	return nil
}

func (s *TicketService) requireActiveCategory(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError("category is required", nil)
	}
	category, err := s.categories.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewValidationError("invalid category", map[string]any{"category": name})
		}
		return apperrors.MapError(err)
	}
	if !category.IsActive {
		return apperrors.NewValidationError("category is inactive", map[string]any{"category": name})
	}
	return nil
}

func (s *TicketService) loadTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, s.mapTicketErr(err, ticketID)
	}
	return ticket, nil
}

func (s *TicketService) mapTicketErr(err error, ticketID string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	return apperrors.MapError(err)
}

func (s *TicketService) publish(ctx context.Context, actor *domain.User, event events.Event) error {
	if s.dispatcher == nil {
		return nil
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Actor = events.Actor{UserID: actor.ID, Email: actor.Email, Role: actor.Role}
	return s.dispatcher.Publish(ctx, event)
}

func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
