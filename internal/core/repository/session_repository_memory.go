package repository

import (
	"context"
	"sync"

	"github.com/duynhne/catalog-service/internal/core/domain"
)

// MemorySessionRepository implements domain.SessionRepository with a
// mutex-guarded map keyed by caller-session ID. It holds its own lock,
// so session reads never contend with catalog writes.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewSessionRepository creates an empty MemorySessionRepository.
func NewSessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]domain.Session)}
}

// Bind stores the session, overwriting any prior binding for the same ID.
func (r *MemorySessionRepository) Bind(_ context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = session
	return nil
}

// Get returns the session bound to the given caller-session ID.
// Returns (nil, nil) when the ID has no binding.
func (r *MemorySessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return &session, nil
}
