package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/repository"
)

// TicketStore implements repository.TicketRepository over the shared store.
type TicketStore struct {
	store *Store
}

// NewTicketRepository returns the in-memory implementation.
func NewTicketRepository(store *Store) repository.TicketRepository {
	return &TicketStore{store: store}
}

func (t *TicketStore) Create(ctx context.Context, ticket *domain.Ticket) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	ticket.ID = newID()
	ticket.CreatedAt = t.store.now()
	ticket.UpdatedAt = ticket.CreatedAt
	t.store.tickets = append(t.store.tickets, *ticket)
	return nil
}

func (t *TicketStore) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	for i := range t.store.tickets {
		if t.store.tickets[i].ID == id {
			ticket := t.store.tickets[i]
			return &ticket, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (t *TicketStore) Update(ctx context.Context, ticket *domain.Ticket) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := range t.store.tickets {
		if t.store.tickets[i].ID == ticket.ID {
			ticket.UpdatedAt = t.store.now()
			stored := t.store.tickets[i]
			stored.Status = ticket.Status
			stored.AgentID = ticket.AgentID
			stored.AgentEmail = ticket.AgentEmail
			stored.UpdatedAt = ticket.UpdatedAt
			t.store.tickets[i] = stored
			return nil
		}
	}
	return repository.ErrNotFound
}

func (t *TicketStore) List(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, int, error) {
	t.store.mu.RLock()
	matched := make([]domain.Ticket, 0, len(t.store.tickets))
	for _, ticket := range t.store.tickets {
		if ticketMatches(&ticket, filter) {
			matched = append(matched, ticket)
		}
	}
	t.store.mu.RUnlock()

	// The total reflects every filter, search included, before slicing.
	total := len(matched)
	sortTickets(matched, filter.SortBy, filter.SortDesc)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []domain.Ticket{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (t *TicketStore) Snapshot(ctx context.Context, userID, agentID *string) ([]domain.Ticket, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	var out []domain.Ticket
	for _, ticket := range t.store.tickets {
		if userID != nil && ticket.UserID != *userID {
			continue
		}
		if agentID != nil && (ticket.AgentID == nil || *ticket.AgentID != *agentID) {
			continue
		}
		out = append(out, ticket)
	}
	return out, nil
}

func (t *TicketStore) IncrementReplyCount(ctx context.Context, id string) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := range t.store.tickets {
		if t.store.tickets[i].ID == id {
			t.store.tickets[i].ReplyCount++
			t.store.tickets[i].UpdatedAt = t.store.now()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (t *TicketStore) AddVote(ctx context.Context, id string, vote domain.VoteType) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := range t.store.tickets {
		if t.store.tickets[i].ID == id {
			if vote == domain.VoteDown {
				t.store.tickets[i].Downvotes++
			} else {
				t.store.tickets[i].Upvotes++
			}
			return nil
		}
	}
	return repository.ErrNotFound
}

func ticketMatches(ticket *domain.Ticket, filter repository.TicketFilter) bool {
	if filter.UserID != nil && ticket.UserID != *filter.UserID {
		return false
	}
	if filter.AgentID != nil && (ticket.AgentID == nil || *ticket.AgentID != *filter.AgentID) {
		return false
	}
	if filter.Status != nil && ticket.Status != *filter.Status {
		return false
	}
	if filter.Category != nil && ticket.Category != *filter.Category {
		return false
	}
	if filter.Priority != nil && ticket.Priority != *filter.Priority {
		return false
	}
	if filter.Search != nil {
		term := strings.ToLower(strings.TrimSpace(*filter.Search))
		if term != "" {
			hit := strings.Contains(strings.ToLower(ticket.Title), term) ||
				strings.Contains(strings.ToLower(ticket.Description), term)
			if !hit && filter.SearchUserEmail {
				hit = strings.Contains(strings.ToLower(ticket.UserEmail), term)
			}
			if !hit {
				return false
			}
		}
	}
	return true
}

func sortTickets(tickets []domain.Ticket, sortBy string, desc bool) {
	less := func(a, b *domain.Ticket) bool {
		switch sortBy {
		case "updatedAt":
			return a.UpdatedAt.Before(b.UpdatedAt)
		case "priority":
			return a.Priority < b.Priority
		case "status":
			return a.Status < b.Status
		case "title":
			return a.Title < b.Title
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(tickets, func(i, j int) bool {
		if desc {
			return less(&tickets[j], &tickets[i])
		}
		return less(&tickets[i], &tickets[j])
	})
}
