package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/repository"
)

// CategoryStore implements repository.CategoryRepository over the shared store.
type CategoryStore struct {
	store *Store
}

// NewCategoryRepository returns the in-memory implementation.
func NewCategoryRepository(store *Store) repository.CategoryRepository {
	return &CategoryStore{store: store}
}

func (c *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	for i := range c.store.categories {
		if strings.EqualFold(c.store.categories[i].Name, category.Name) {
			return repository.ErrDuplicate
		}
	}
	category.ID = newID()
	category.CreatedAt = c.store.now()
	category.UpdatedAt = category.CreatedAt
	c.store.categories = append(c.store.categories, *category)
	return nil
}

func (c *CategoryStore) Update(ctx context.Context, category *domain.Category) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	for i := range c.store.categories {
		if strings.EqualFold(c.store.categories[i].Name, category.Name) && c.store.categories[i].ID != category.ID {
			return repository.ErrDuplicate
		}
	}
	for i := range c.store.categories {
		if c.store.categories[i].ID == category.ID {
			category.UpdatedAt = c.store.now()
			c.store.categories[i] = *category
			return nil
		}
	}
	return repository.ErrNotFound
}

func (c *CategoryStore) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	for i := range c.store.categories {
		if c.store.categories[i].ID == id {
			category := c.store.categories[i]
			return &category, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (c *CategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	for i := range c.store.categories {
		if strings.EqualFold(c.store.categories[i].Name, name) {
			category := c.store.categories[i]
			return &category, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (c *CategoryStore) List(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	var categories []domain.Category
	for _, category := range c.store.categories {
		if activeOnly && !category.IsActive {
			continue
		}
		categories = append(categories, category)
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}
