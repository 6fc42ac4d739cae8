package memory

import (
	"context"
	"sort"

	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/repository"
)

// ShareStore implements repository.ShareRepository over the shared store.
type ShareStore struct {
	store *Store
}

// NewShareRepository returns the in-memory implementation.
func NewShareRepository(store *Store) repository.ShareRepository {
	return &ShareStore{store: store}
}

func (s *ShareStore) Create(ctx context.Context, share *domain.TicketShare) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	share.ID = newID()
	share.SharedAt = s.store.now()
	s.store.shares = append(s.store.shares, *share)
	return nil
}

func (s *ShareStore) ListBySharedWith(ctx context.Context, agentID string) ([]domain.TicketShare, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	var shares []domain.TicketShare
	for _, share := range s.store.shares {
		for _, member := range share.SharedWith {
			if member == agentID {
				shares = append(shares, share)
				break
			}
		}
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[j].SharedAt.Before(shares[i].SharedAt)
	})
	return shares, nil
}
