// internal/game/engine.go
//
// Word validation engine for a WordScramble round.
// Responsibilities:
//   - Normalize raw player input (trim + lowercase).
//   - Decide whether a candidate may join the round, and if not, why.
//
// Checks run in a fixed order and the first failure wins:
//   same as root → too short → already used → not spellable → not a real word.
//
// The engine holds no round state; callers pass the root word and history in
// and apply the result themselves.
package game

import (
	"strings"
	"unicode/utf8"
)

// Engine evaluates candidates against a root word and history.
type Engine struct {
	dict     DictionaryChecker
	language string
}

// NewEngine returns an engine that consults dict for real-word checks.
// An empty language falls back to DefaultLanguage.
func NewEngine(dict DictionaryChecker, language string) *Engine {
	if language == "" {
		language = DefaultLanguage
	}
	return &Engine{dict: dict, language: language}
}

// Language reports the language code passed to the dictionary.
func (e *Engine) Language() string { return e.language }

// Evaluate decides whether candidate may be accepted into a round rooted at
// root, given the already accepted words in used. candidate is expected to be
// normalized already (see Normalize). Evaluate never mutates its inputs.
func (e *Engine) Evaluate(root string, used []string, candidate string) Outcome {
	if candidate == root {
		return Reject(ReasonSameAsRoot)
	}
	if utf8.RuneCountInString(candidate) < MinWordLength {
		return Reject(ReasonTooShort)
	}
	if contains(used, candidate) {
		return Reject(ReasonNotOriginal)
	}
	if !IsPossible(root, candidate) {
		return Reject(ReasonNotPossible)
	}
	if e.dict == nil || !e.dict.IsRealWord(candidate, e.language) {
		return Reject(ReasonNotReal)
	}
	return Accept()
}

// IsPossible reports whether candidate can be spelled from root's letters,
// using each occurrence in root at most once.
//
// Letters of root are counted once; every candidate letter then consumes one
// remaining occurrence. Any letter with nothing left to consume fails.
func IsPossible(root, candidate string) bool {
	remaining := make(map[rune]int, len(root))
	for _, r := range root {
		remaining[r]++
	}
	for _, r := range candidate {
		if remaining[r] == 0 {
			return false
		}
		remaining[r]--
	}
	return true
}

// Normalize lowercases s and trims surrounding whitespace.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func contains(list []string, w string) bool {
	for _, x := range list {
		if x == w {
			return true
		}
	}
	return false
}
