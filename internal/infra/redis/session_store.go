package redis

import (
	"context"
	"sync"
	"time"

	"devops-quiz/internal/app"
	"github.com/redis/go-redis/v9"
)

type sessionEntry struct {
	engine *app.Engine
	refs   int
}

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Engines stay in process; Redis only carries a liveness marker per session
// so operators can see who is playing across instances. The marker and the
// engine go away together when the last holder releases the session.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
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
	// best-effort liveness marker, refreshed on every open
	_ = s.client.Set(context.Background(), s.key(sessionID), entry.refs, s.ttl).Err()
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
	if entry.refs > 0 {
		_ = s.client.Set(context.Background(), s.key(sessionID), entry.refs, s.ttl).Err()
		return
	}
	delete(s.sessions, sessionID)
	_ = s.client.Del(context.Background(), s.key(sessionID)).Err()
}

func (s *SessionStore) key(sessionID string) string {
	return "quiz:session:" + sessionID
}
