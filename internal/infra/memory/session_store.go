package memory

import (
	"sync"

	"devops-quiz/internal/app"
)

type sessionEntry struct {
	engine *app.Engine
	refs   int
}

// SessionStore is an in-memory implementation of app.SessionRepository.
// Each GetOrCreate takes a reference; the engine is dropped when the last one is released.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
	}
}

func (s *SessionStore) GetOrCreate(sessionID string, create func() *app.Engine) *app.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[sessionID]
	if !ok {
		entry = &sessionEntry{engine: create()}
		s.sessions[sessionID] = entry
	}
	entry.refs++
	return entry.engine
}

func (s *SessionStore) Get(sessionID string) (*app.Engine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	return entry.engine, true
}

func (s *SessionStore) Release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(s.sessions, sessionID)
	}
}
