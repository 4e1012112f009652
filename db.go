// db.go
//
// Database helpers for the WordScramble server.
// Responsibilities:
//   - Opening the SQLite lexicon database with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Building the dictionary checker and seeding its lexicon.

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/Comtister/WordScramble/internal/config"
	"github.com/Comtister/WordScramble/internal/dictionary"
	"github.com/Comtister/WordScramble/internal/game"
)

// openDB opens (and creates if missing) a SQLite database file.
// The parent directory is created for relative DSNs like ./data/app.db.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dsn, err)
	}
	return db, nil
}

// migrate applies *.sql files from fsys in lexical order.
// Applied file names are tracked in _migrations; each file runs in its own
// transaction.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// lexicon is the dictionary checker plus what /debug/words reports about it.
type lexicon struct {
	checker game.DictionaryChecker
	size    func() int
	close   func() error
}

// openLexicon builds the configured dictionary checker and seeds it.
// DSN "memory" (any case) keeps the lexicon in process; anything else is a SQLite file.
func openLexicon(ctx context.Context, cfg config.DictionaryConfig, migrations fs.FS) (*lexicon, error) {
	list, err := dictionary.LoadLexicon(cfg.File, cfg.Language)
	if err != nil {
		return nil, err
	}

	if cfg.InMemory() {
		set := dictionary.NewSet()
		set.Add(cfg.Language, list...)
		log.Info().Str("language", cfg.Language).Int("words", set.Len(cfg.Language)).Msg("lexicon loaded in memory")
		return &lexicon{
			checker: set,
			size:    func() int { return set.Len(cfg.Language) },
			close:   func() error { return nil },
		}, nil
	}

	db, err := openDB(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	d := dictionary.NewSQL(db)
	added, err := d.Import(ctx, cfg.Language, list)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info().Str("dsn", cfg.DSN).Str("language", cfg.Language).Int("added", added).Msg("lexicon seeded")
	return &lexicon{
		checker: d,
		size: func() int {
			n, err := d.Count(context.Background(), cfg.Language)
			if err != nil {
				log.Warn().Err(err).Msg("count lexicon")
			}
			return n
		},
		close: db.Close,
	}, nil
}
