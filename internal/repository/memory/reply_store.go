package memory

import (
	"context"
	"sort"

	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/repository"
)

// ReplyStore implements repository.ReplyRepository over the shared store.
type ReplyStore struct {
	store *Store
}

// NewReplyRepository returns the in-memory implementation.
func NewReplyRepository(store *Store) repository.ReplyRepository {
	return &ReplyStore{store: store}
}

func (r *ReplyStore) Create(ctx context.Context, reply *domain.TicketReply) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	reply.ID = newID()
	reply.CreatedAt = r.store.now()
	r.store.replies = append(r.store.replies, *reply)
	return nil
}

func (r *ReplyStore) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketReply, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var replies []domain.TicketReply
	for _, reply := range r.store.replies {
		if reply.TicketID == ticketID {
			replies = append(replies, reply)
		}
	}
	sort.SliceStable(replies, func(i, j int) bool {
		return replies[i].CreatedAt.Before(replies[j].CreatedAt)
	})
	return replies, nil
}
