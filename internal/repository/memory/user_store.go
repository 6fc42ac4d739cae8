package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/repository"
)

// UserStore implements repository.UserRepository over the shared store.
type UserStore struct {
	store *Store
}

// NewUserRepository returns the in-memory implementation.
func NewUserRepository(store *Store) repository.UserRepository {
	return &UserStore{store: store}
}

func (u *UserStore) Create(ctx context.Context, user *domain.User) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for i := range u.store.users {
		if strings.EqualFold(u.store.users[i].Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	user.ID = newID()
	user.CreatedAt = u.store.now()
	user.UpdatedAt = user.CreatedAt
	u.store.users = append(u.store.users, *user)
	return nil
}

func (u *UserStore) Update(ctx context.Context, user *domain.User) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for i := range u.store.users {
		if u.store.users[i].ID == user.ID {
			user.UpdatedAt = u.store.now()
			u.store.users[i] = *user
			return nil
		}
	}
	return repository.ErrNotFound
}

func (u *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	for i := range u.store.users {
		if u.store.users[i].ID == id {
			user := u.store.users[i]
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (u *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	for i := range u.store.users {
		if strings.EqualFold(u.store.users[i].Email, email) {
			user := u.store.users[i]
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (u *UserStore) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, int, error) {
	u.store.mu.RLock()
	matched := make([]domain.User, 0, len(u.store.users))
	for _, user := range u.store.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		if filter.Search != nil {
			term := strings.ToLower(strings.TrimSpace(*filter.Search))
			if term != "" &&
				!strings.Contains(strings.ToLower(user.Email), term) &&
				!strings.Contains(strings.ToLower(user.DisplayName), term) {
				continue
			}
		}
		matched = append(matched, user)
	}
	u.store.mu.RUnlock()

	total := len(matched)
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[j].CreatedAt.Before(matched[i].CreatedAt)
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []domain.User{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (u *UserStore) Delete(ctx context.Context, id string) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for i := range u.store.users {
		if u.store.users[i].ID == id {
			u.store.users = append(u.store.users[:i], u.store.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
