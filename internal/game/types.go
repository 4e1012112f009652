// internal/game/types.go
//
// Core type definitions for the WordScramble engine.
// Defines:
//   - Reason: why a candidate was rejected (one per rejection).
//   - Outcome: accepted, or rejected with exactly one Reason.
//   - DictionaryChecker / RootWordSource: capabilities the engine and
//     sessions depend on but do not implement.

package game

import "errors"

// MinWordLength is the shortest candidate that can be accepted.
const MinWordLength = 4

// DefaultLanguage is passed to the DictionaryChecker when none is configured.
const DefaultLanguage = "en"

// ErrNoRound is returned by Session.Submit before the first StartRound.
var ErrNoRound = errors.New("game: no round started")

// Reason identifies the first check a candidate failed.
// Values are stable and safe to expose over JSON.
type Reason string

const (
	ReasonSameAsRoot  Reason = "same_as_root"
	ReasonTooShort    Reason = "too_short"
	ReasonNotOriginal Reason = "not_original"
	ReasonNotPossible Reason = "not_possible"
	ReasonNotReal     Reason = "not_real"
)

// Title is a short heading suitable for an alert.
func (r Reason) Title() string {
	switch r {
	case ReasonSameAsRoot:
		return "Same as root word"
	case ReasonTooShort:
		return "Word too short"
	case ReasonNotOriginal:
		return "Word used already"
	case ReasonNotPossible:
		return "Word not possible"
	case ReasonNotReal:
		return "Word not recognized"
	}
	return ""
}

// Message explains the rejection to the player.
func (r Reason) Message() string {
	switch r {
	case ReasonSameAsRoot:
		return "You can't just submit the root word."
	case ReasonTooShort:
		return "Words need at least four letters."
	case ReasonNotOriginal:
		return "Be more original."
	case ReasonNotPossible:
		return "You can't spell that word from the root word's letters."
	case ReasonNotReal:
		return "You can't just make them up, you know."
	}
	return ""
}

// Outcome is the result of evaluating one candidate.
// The zero value is a rejection with no reason and should not be produced.
type Outcome struct {
	Accepted bool
	Reason   Reason // empty when Accepted
}

// Accept is the outcome for a candidate that passed every check.
func Accept() Outcome { return Outcome{Accepted: true} }

// Reject builds a rejection carrying r.
func Reject(r Reason) Outcome { return Outcome{Reason: r} }

// DictionaryChecker decides whether word is a real word in language.
// Implementations must return false, not fail, when they cannot decide.
type DictionaryChecker interface {
	IsRealWord(word, language string) bool
}

// RootWordSource supplies the root word for a new round.
// A non-nil error means the round cannot start (configuration failure).
type RootWordSource interface {
	PickRootWord() (string, error)
}
