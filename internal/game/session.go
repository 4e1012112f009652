// internal/game/session.go
//
// Session holds one player's round state and is the API a driver (HTTP,
// websocket, tests) talks to:
//   - StartRound: pick a new root word and clear history.
//   - Submit: normalize, evaluate, and record accepted words.
//   - RootWord / UsedWords / Snapshot: read-only views for rendering.
//
// Accepted words are kept most-recent-first.

package game

import (
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Session is one player's sequence of rounds.
// Methods are safe for concurrent use; submissions are applied one at a time.
type Session struct {
	ID string

	engine *Engine
	source RootWordSource

	mu        sync.Mutex
	root      string
	used      []string
	startedAt time.Time
}

// NewSession creates a session with a fresh ID. No round is started yet.
func NewSession(engine *Engine, source RootWordSource) *Session {
	return &Session{
		ID:     uuid.NewString(),
		engine: engine,
		source: source,
	}
}

// StartRound resets history and draws a new root word from the session's
// source. On error the previous round, if any, is left untouched.
func (s *Session) StartRound() (string, error) {
	return s.StartRoundFrom(s.source)
}

// StartRoundFrom is StartRound with a one-off source (e.g. the daily word).
func (s *Session) StartRoundFrom(src RootWordSource) (string, error) {
	root, err := src.PickRootWord()
	if err != nil {
		return "", err
	}
	root = Normalize(root)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = root
	s.used = []string{}
	s.startedAt = time.Now().UTC()
	return root, nil
}

// Submit evaluates a raw candidate and, on acceptance, records it at the
// front of the history. The only error is ErrNoRound.
func (s *Session) Submit(candidate string) (Outcome, error) {
	word := Normalize(candidate)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root == "" {
		return Outcome{}, ErrNoRound
	}
	out := s.engine.Evaluate(s.root, s.used, word)
	if out.Accepted {
		s.used = append([]string{word}, s.used...)
	}
	return out, nil
}

// RootWord returns the current root word, or "" before the first round.
func (s *Session) RootWord() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

// UsedWords returns a copy of the accepted words, most recent first.
func (s *Session) UsedWords() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.used...)
}

// UsedWord is one accepted word plus its letter count.
type UsedWord struct {
	Word    string `json:"word"`
	Letters int    `json:"letters"`
}

// Snapshot is a read-only view of a session for rendering.
type Snapshot struct {
	SessionID string     `json:"sessionId"`
	RootWord  string     `json:"rootWord"`
	Language  string     `json:"language"`
	Used      []UsedWord `json:"used"`
	StartedAt time.Time  `json:"startedAt"`
}

// Snapshot captures the current round.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	used := make([]UsedWord, 0, len(s.used))
	for _, w := range s.used {
		used = append(used, UsedWord{Word: w, Letters: utf8.RuneCountInString(w)})
	}
	return Snapshot{
		SessionID: s.ID,
		RootWord:  s.root,
		Language:  s.engine.Language(),
		Used:      used,
		StartedAt: s.startedAt,
	}
}
