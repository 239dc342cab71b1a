package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/devnice/usuarios-api/internal/domain"
)

// MemoryUserRepository is an in-memory UserRepository, used when no database is configured.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]domain.User
	nextID int64
}

// NewMemoryUserRepository creates an empty in-memory repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[int64]domain.User)}
}

func (r *MemoryUserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(0, user) {
		return ErrDuplicateUser
	}

	r.nextID++
	now := time.Now()
	user.ID = r.nextID
	user.Version = 0
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return ErrUserNotFound
	}
	if stored.Version != user.Version {
		return ErrVersionConflict
	}
	if r.taken(user.ID, user) {
		return ErrDuplicateUser
	}

	user.Version++
	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// taken reports whether another user than self already uses the name or email.
func (r *MemoryUserRepository) taken(self int64, user *domain.User) bool {
	for id, other := range r.users {
		if id == self {
			continue
		}
		if other.Name == user.Name || other.Email == user.Email {
			return true
		}
	}
	return false
}
