// Package memory provides in-memory implementations of the repository
// interfaces. The store is constructor-injected and lifecycle-scoped so
// tests stay hermetic; a mutex guards every collection, making counter
// updates atomic under concurrent requests.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quickdesk/helpdesk-api/internal/domain"
)

// Store holds every collection behind one lock.
type Store struct {
	mu            sync.RWMutex
	users         []domain.User
	tickets       []domain.Ticket
	replies       []domain.TicketReply
	shares        []domain.TicketShare
	categories    []domain.Category
	notifications []domain.Notification

	now func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// SetClock overrides the store's time source for deterministic tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SeedDefaultCategories loads the category registry the service ships with.
func (s *Store) SeedDefaultCategories() {
	defaults := []domain.Category{
		{Name: "technical", Description: "Technical support issues", Color: "#007bff"},
		{Name: "billing", Description: "Billing and payment issues", Color: "#28a745"},
		{Name: "general", Description: "General inquiries", Color: "#6c757d"},
		{Name: "feature_request", Description: "Feature requests", Color: "#17a2b8"},
		{Name: "bug_report", Description: "Bug reports", Color: "#dc3545"},
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, category := range defaults {
		category.ID = uuid.NewString()
		category.IsActive = true
		category.CreatedAt = s.now()
		category.UpdatedAt = category.CreatedAt
		s.categories = append(s.categories, category)
	}
}

func newID() string {
	return uuid.NewString()
}
