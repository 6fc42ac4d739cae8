package memory

import (
	"context"
	"sort"

	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/repository"
)

// NotificationStore implements repository.NotificationRepository over the
// shared store.
type NotificationStore struct {
	store *Store
}

// NewNotificationRepository returns the in-memory implementation.
func NewNotificationRepository(store *Store) repository.NotificationRepository {
	return &NotificationStore{store: store}
}

func (n *NotificationStore) Enqueue(ctx context.Context, notification *domain.Notification) error {
	n.store.mu.Lock()
	defer n.store.mu.Unlock()
	notification.ID = newID()
	notification.Sent = false
	notification.CreatedAt = n.store.now()
	n.store.notifications = append(n.store.notifications, *notification)
	return nil
}

func (n *NotificationStore) ListPending(ctx context.Context, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 100
	}
	n.store.mu.RLock()
	defer n.store.mu.RUnlock()
	var pending []domain.Notification
	for _, notification := range n.store.notifications {
		if !notification.Sent {
			pending = append(pending, notification)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (n *NotificationStore) MarkSent(ctx context.Context, id string) error {
	n.store.mu.Lock()
	defer n.store.mu.Unlock()
	for i := range n.store.notifications {
		if n.store.notifications[i].ID == id {
			n.store.notifications[i].Sent = true
			return nil
		}
	}
	return repository.ErrNotFound
}
