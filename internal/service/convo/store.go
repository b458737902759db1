package convo

import (
	"sync"
	"time"

	"github.com/google/uuid"

	convomodel "github.com/coinbuddy/backend/internal/model/convo"
)

// Store manages per-connection session contexts. The engine mutates a
// session only while handling that session's current message, so the
// store only guards the map itself.
type Store interface {
	Create() *convomodel.Session
	Get(id string) (*convomodel.Session, bool)
	Delete(id string)
}

// MemoryStore implements Store with a mutexed in-memory map.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*convomodel.Session
}

// NewMemoryStore returns an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*convomodel.Session)}
}

// Create provisions a fresh session context with default fields.
func (s *MemoryStore) Create() *convomodel.Session {
	session := &convomodel.Session{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		FlowTempData: make(map[string]any),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// Get looks up a live session by id.
func (s *MemoryStore) Get(id string) (*convomodel.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Delete discards a session context.
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
