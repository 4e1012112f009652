// Package daily picks a deterministic "word of the day" root word so every
// player starting a daily round on the same UTC date gets the same word.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/Comtister/WordScramble/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Source is a root word source that returns the same word all day.
type Source struct {
	list     []string
	salt     string
	fallback string
	now      func() time.Time
}

// NewSource builds a daily source over list. fallback is returned when the
// list is empty, as for random rounds; "" disables it.
func NewSource(list []string, salt, fallback string) *Source {
	return &Source{list: list, salt: salt, fallback: words.Fallback(fallback), now: time.Now}
}

// PickRootWord returns today's word.
func (s *Source) PickRootWord() (string, error) {
	if len(s.list) == 0 {
		if s.fallback == "" {
			return "", words.ErrEmptyList
		}
		return s.fallback, nil
	}
	return s.list[WordIndex(s.now(), s.salt, len(s.list))], nil
}

// Today reports the date key the current pick is based on.
func (s *Source) Today() string { return DateKey(s.now()) }
