// Package dictionary provides real-word checkers for the validation engine.
//
// Every checker answers false when it cannot decide (unknown language,
// storage failure) so that evaluation always produces an outcome.
package dictionary

import (
	"strings"
	"sync"
)

// Set is an in-memory lexicon keyed by language.
type Set struct {
	mu    sync.RWMutex
	langs map[string]map[string]struct{}
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{langs: make(map[string]map[string]struct{})}
}

// Add records words for language. Words are lowercased and trimmed.
func (s *Set) Add(language string, words ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.langs[language]
	if !ok {
		m = make(map[string]struct{}, len(words))
		s.langs[language] = m
	}
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			m[w] = struct{}{}
		}
	}
}

// IsRealWord reports whether word is known for language.
func (s *Set) IsRealWord(word, language string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.langs[language][word]
	return ok
}

// Len reports how many words are known for language.
func (s *Set) Len(language string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.langs[language])
}
