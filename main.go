package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Comtister/WordScramble/assets"
	"github.com/Comtister/WordScramble/internal/config"
	"github.com/Comtister/WordScramble/internal/daily"
	"github.com/Comtister/WordScramble/internal/game"
	"github.com/Comtister/WordScramble/internal/httpserver"
	"github.com/Comtister/WordScramble/internal/store"
	"github.com/Comtister/WordScramble/internal/words"
)

// sessionSweepInterval is how often idle sessions are evicted.
const sessionSweepInterval = 10 * time.Minute

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// A missing word list means no round can ever start.
	roots, err := words.Init(cfg.Words.File, cfg.Words.Fallback)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load root word list")
	}

	lex, err := openLexicon(context.Background(), cfg.Dictionary, assets.Migrations())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open lexicon")
	}
	defer func() { _ = lex.close() }()

	// Sessions live as long as the token that names them.
	sessions := store.NewMemoryStore(cfg.Auth.TokenTTL)
	go store.SweepLoop(context.Background(), sessions, sessionSweepInterval)

	srv := httpserver.New(httpserver.Deps{
		Engine: game.NewEngine(lex.checker, cfg.Dictionary.Language),
		Store:  sessions,
		Words:  roots,
		Daily:  daily.NewSource(roots.Words(), cfg.Words.DailySalt, roots.Fallback()),
		Stats: func() map[string]int {
			return map[string]int{"rootWords": roots.Len(), "lexicon": lex.size()}
		},
		Secret:       cfg.Auth.Secret,
		TokenTTL:     cfg.Auth.TokenTTL,
		CookieName:   cfg.Auth.CookieName,
		ClientOrigin: cfg.Server.ClientOrigin,
		Secure:       cfg.IsProduction(),
	})

	log.Info().Str("port", cfg.Server.Port).Int("rootWords", roots.Len()).Msg("starting wordscramble server")
	if err := srv.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
