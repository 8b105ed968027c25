package reservation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session ties a visitor to their flow.
type Session struct {
	ID        string
	Flow      *Flow
	StartedAt time.Time

	mu        sync.Mutex
	updatedAt time.Time
}

// Touch refreshes the session's idle timer.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = time.Now()
}

// IsExpired checks if the session has been idle longer than timeout.
func (s *Session) IsExpired(timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.updatedAt) > timeout
}

// SessionStore keeps one reservation flow per visitor, expiring idle ones.
type SessionStore struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	timeout  time.Duration
}

// NewSessionStore creates a store with the given idle timeout.
func NewSessionStore(timeout time.Duration) *SessionStore {
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		timeout:  timeout,
	}
}

// Create starts a new session with a fresh flow.
func (ss *SessionStore) Create() *Session {
	now := time.Now()
	session := &Session{
		ID:        uuid.New().String(),
		Flow:      NewFlow(),
		StartedAt: now,
		updatedAt: now,
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[session.ID] = session
	return session
}

// Get returns the session, or nil when unknown or expired. A hit refreshes
// the idle timer.
func (ss *SessionStore) Get(id string) *Session {
	ss.mu.RLock()
	session := ss.sessions[id]
	ss.mu.RUnlock()

	if session == nil {
		return nil
	}
	if session.IsExpired(ss.timeout) {
		ss.Delete(id)
		return nil
	}
	session.Touch()
	return session
}

// Delete removes a session.
func (ss *SessionStore) Delete(id string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, id)
}

// Len returns the number of live sessions.
func (ss *SessionStore) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

// Cleanup removes expired sessions and returns how many were dropped.
func (ss *SessionStore) Cleanup() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	removed := 0
	for id, session := range ss.sessions {
		if session.IsExpired(ss.timeout) {
			delete(ss.sessions, id)
			removed++
		}
	}
	return removed
}

// StartCleanup runs Cleanup on a ticker until the context is done.
func (ss *SessionStore) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ss.Cleanup()
		case <-ctx.Done():
			return
		}
	}
}
