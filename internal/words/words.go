// internal/words/words.go
//
// Root word lists for WordScramble rounds.
//
// Responsibilities:
//   - Load the root word list from a file (WORDS_FILE) or the embedded default.
//   - Parse newline-delimited lists (trim, lowercase, skip blanks/comments).
//   - Pick a uniformly random root word for each new round.
//
// Failure policy:
//   - A missing or unreadable file is a configuration error returned by Init.
//   - A readable list with no usable words falls back to the configured
//     fallback word (logged at warn level). With no fallback configured the
//     pick fails with ErrEmptyList instead.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/Comtister/WordScramble/assets"
)

// DefaultFallback is the root word used when a readable list is empty.
const DefaultFallback = "silkworm"

// ErrEmptyList means the list had no usable words and no fallback is set.
var ErrEmptyList = errors.New("words: root word list is empty")

// List is a RootWordSource backed by an in-memory word list.
type List struct {
	words    []string
	fallback string
}

// New builds a List. fallback may be empty to disable the fallback word;
// a fallback containing non-letters is dropped the same way.
func New(list []string, fallback string) *List {
	return &List{words: list, fallback: Fallback(fallback)}
}

// Fallback normalizes a configured fallback word, returning "" when it is
// not made of letters only.
func Fallback(word string) string {
	w := strings.ToLower(strings.TrimSpace(word))
	if w != "" && !isAlpha(w) {
		log.Warn().Str("fallback", word).Msg("ignoring fallback root word with non-letters")
		return ""
	}
	return w
}

// Init loads the root word list from path, or from the embedded start.txt
// when path is empty.
func Init(path, fallback string) (*List, error) {
	var (
		list []string
		err  error
	)
	if path == "" {
		list, err = readEmbedded(assets.StartWords)
	} else {
		list, err = ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("words: load root list: %w", err)
	}
	if len(list) == 0 {
		log.Warn().Str("path", path).Str("fallback", fallback).Msg("root word list is empty")
	}
	return New(list, fallback), nil
}

// PickRootWord returns a cryptographically random word from the list,
// or the fallback word if the list is empty.
func (l *List) PickRootWord() (string, error) {
	if len(l.words) == 0 {
		if l.fallback == "" {
			return "", ErrEmptyList
		}
		return l.fallback, nil
	}
	return l.words[randomIndex(len(l.words))], nil
}

// Fallback reports the fallback word, or "" when none is set.
func (l *List) Fallback() string { return l.fallback }

// Words returns the loaded words. Callers must not modify the slice.
func (l *List) Words() []string { return l.words }

// Len reports how many words were loaded.
func (l *List) Len() int { return len(l.words) }

// ReadFile loads one word per line from a file.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func readEmbedded(name string) ([]string, error) {
	f, err := assets.FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a newline-delimited list, lowercasing and trimming each line.
// Blank lines, "#" comments and entries with non-letters are skipped.
func Parse(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") || !isAlpha(w) {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// isAlpha reports whether s consists only of letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func randomIndex(n int) int {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(nBig.Int64())
}
