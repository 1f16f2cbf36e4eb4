package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an idle session's Document is kept before
// the sweeper discards it.
const DefaultSessionTTL = 2 * time.Hour

type sessionEntry struct {
	store    *Store
	lastSeen time.Time
}

// SessionManager maps opaque session IDs to per-session Stores. Each
// browser session edits its own Document; there is no cross-session
// state and no persistence. Expired sessions are swept in the background.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionManager creates a manager and starts its expiry sweeper.
func NewSessionManager(ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	m := &SessionManager{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Create registers a new session and returns its ID and Store.
func (m *SessionManager) Create() (string, *Store) {
	id := uuid.New().String()
	s := New()
	m.mu.Lock()
	m.sessions[id] = &sessionEntry{store: s, lastSeen: time.Now()}
	m.mu.Unlock()
	return id, s
}

// Get returns the Store for a session ID, refreshing its idle timer.
// The second return is false if the session is unknown or expired.
func (m *SessionManager) Get(id string) (*Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = time.Now()
	return entry.store, true
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Stop halts the background sweeper.
func (m *SessionManager) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *SessionManager) sweep() {
	ticker := time.NewTicker(m.ttl / 4)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for id, entry := range m.sessions {
				if now.Sub(entry.lastSeen) > m.ttl {
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
		}
	}
}
