// internal/dictionary/sql.go
//
// SQLite-backed lexicon. Words live in the `lexicon` table created by
// assets/sql/001_lexicon.sql:
//
//   lexicon(language TEXT, word TEXT, PRIMARY KEY(language, word))
//
// Import is idempotent (INSERT OR IGNORE) and runs in one transaction.
// Lookup errors are logged and reported as "not a real word".

package dictionary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// lookupTimeout bounds a single IsRealWord query.
const lookupTimeout = 2 * time.Second

// SQL is a DictionaryChecker over a database/sql handle.
type SQL struct {
	db *sql.DB
}

// NewSQL wraps db. The lexicon table must already exist.
func NewSQL(db *sql.DB) *SQL { return &SQL{db: db} }

// Import inserts words for language, skipping ones already present.
// Returns how many rows were added.
func (d *SQL) Import(ctx context.Context, language string, words []string) (int, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("dictionary: begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO lexicon (language, word) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("dictionary: prepare import: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, language, w)
		if err != nil {
			return 0, fmt.Errorf("dictionary: insert %q: %w", w, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("dictionary: commit import: %w", err)
	}
	return added, nil
}

// Count reports how many words are stored for language.
func (d *SQL) Count(ctx context.Context, language string) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM lexicon WHERE language=?`, language,
	).Scan(&n)
	return n, err
}

// IsRealWord reports whether word is stored for language.
func (d *SQL) IsRealWord(word, language string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	var one int
	err := d.db.QueryRowContext(ctx,
		`SELECT 1 FROM lexicon WHERE language=? AND word=?`, language, word,
	).Scan(&one)
	switch {
	case err == nil:
		return true
	case errors.Is(err, sql.ErrNoRows):
		return false
	default:
		log.Warn().Err(err).Str("word", word).Str("language", language).Msg("dictionary lookup failed")
		return false
	}
}
