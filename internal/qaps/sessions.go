package qaps

import (
	"sync"

	"github.com/google/uuid"
)

// Sessions is the in-memory store of active editing sessions. Each session
// is owned by a single editor; the store lock only guards the map itself.
type Sessions struct {
	mu     sync.Mutex
	active map[uuid.UUID]*Session
}

// NewSessions creates an empty session store.
func NewSessions() *Sessions {
	return &Sessions{
		active: make(map[uuid.UUID]*Session),
	}
}

// Add registers a session and returns it for chaining.
func (s *Sessions) Add(sess *Session) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[sess.ID()] = sess
	return sess
}

// Get resolves a session by id.
func (s *Sessions) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.active[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Remove drops a session, typically after finalization.
func (s *Sessions) Remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, id)
}

// Len returns the number of active sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
