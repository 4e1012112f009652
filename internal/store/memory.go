// internal/store/memory.go
//
// In-memory implementation of Store for WordScramble sessions.
//
// Characteristics:
//   - Stores *game.Session objects keyed by Session.ID.
//   - Concurrency-safe via RWMutex.
//   - Sessions idle for longer than the TTL are evicted: lazily on Get, and
//     in bulk by Sweep (run periodically from main via SweepLoop).
//   - State is lost when the process restarts; rounds are not persisted.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Comtister/WordScramble/internal/game"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("store: session not found")

// Store defines the persistence interface for sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Len reports how many sessions are held.
	Len() int

	// Sweep evicts expired sessions and reports how many were removed.
	Sweep() int
}

type entry struct {
	sess     *game.Session
	lastUsed time.Time
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store. Sessions not saved or
// fetched within ttl are evicted; ttl <= 0 keeps them forever.
func NewMemoryStore(ttl time.Duration) Store {
	return &memory{sessions: make(map[string]*entry), ttl: ttl, now: time.Now}
}

func (m *memory) expired(e *entry, now time.Time) bool {
	return m.ttl > 0 && now.Sub(e.lastUsed) > m.ttl
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &entry{sess: s, lastUsed: m.now()}
	return nil
}

// Get refreshes the session's last-used time. Expired sessions are removed
// and reported as ErrNotFound.
func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := m.now()
	if m.expired(e, now) {
		delete(m.sessions, id)
		return nil, ErrNotFound
	}
	e.lastUsed = now
	return e.sess, nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for id, e := range m.sessions {
		if m.expired(e, now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// SweepLoop calls st.Sweep every interval until ctx is done.
func SweepLoop(ctx context.Context, st Store, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				log.Info().Int("evicted", n).Int("remaining", st.Len()).Msg("expired sessions evicted")
			}
		}
	}
}
