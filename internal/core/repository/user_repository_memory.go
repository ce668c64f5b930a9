// Package repository provides the in-memory implementations of the
// domain repository interfaces. All state is process-lifetime only;
// nothing survives a restart.
package repository

import (
	"context"
	"sync"

	"github.com/duynhne/catalog-service/internal/core/domain"
)

// MemoryUserRepository implements domain.UserRepository with a
// mutex-guarded map keyed by username.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserRepository creates an empty MemoryUserRepository.
func NewUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]domain.User)}
}

// Find returns the user matching the given username.
// Returns (nil, nil) when no user is found.
func (r *MemoryUserRepository) Find(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// IsAvailable returns true when no user with the given username exists.
func (r *MemoryUserRepository) IsAvailable(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, taken := r.users[username]
	return !taken, nil
}

// Create inserts a new user. The write lock spans the availability
// check and the insert, so concurrent calls for the same username admit
// exactly one winner.
func (r *MemoryUserRepository) Create(_ context.Context, username, password string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.users[username]; taken {
		return false, nil
	}
	r.users[username] = domain.User{Username: username, Password: password}
	return true, nil
}
