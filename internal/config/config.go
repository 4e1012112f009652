package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Comtister/WordScramble/internal/words"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Words      WordsConfig
	Dictionary DictionaryConfig
	Auth       AuthConfig
	Logging    LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ClientOrigin string
	Env          string // "development" or "production"
}

// WordsConfig controls where root words come from.
type WordsConfig struct {
	File      string // empty = embedded start.txt
	Fallback  string // empty = fail when the list is empty
	DailySalt string
}

// DictionaryConfig controls the real-word checker.
type DictionaryConfig struct {
	DSN      string // "memory" keeps the lexicon in process
	File     string // empty = bundled lexicon for Language
	Language string
}

// AuthConfig controls session tokens.
type AuthConfig struct {
	Secret     string
	TokenTTL   time.Duration
	CookieName string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5175"),
			ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
			Env:          getEnv("APP_ENV", "development"),
		},
		Words: WordsConfig{
			File:      os.Getenv("WORDS_FILE"),
			Fallback:  fallbackWord(getEnv("ROOT_FALLBACK", words.DefaultFallback)),
			DailySalt: getEnv("DAILY_SALT", "local_dev_salt"),
		},
		Dictionary: DictionaryConfig{
			DSN:      getEnv("DICT_DSN", "./data/wordscramble.db"),
			File:     os.Getenv("DICT_FILE"),
			Language: getEnv("DICT_LANGUAGE", "en"),
		},
		Auth: AuthConfig{
			Secret:     getEnv("JWT_SECRET", "dev_secret_change_me"),
			TokenTTL:   time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
			CookieName: getEnv("COOKIE_NAME", "wordscramble_session"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// InMemoryDictionary reports whether the lexicon should skip SQLite.
func (c *Config) InMemoryDictionary() bool {
	return c.Dictionary.InMemory()
}

// InMemory reports whether DSN names the in-process lexicon ("memory", any case).
func (d DictionaryConfig) InMemory() bool {
	return strings.EqualFold(strings.TrimSpace(d.DSN), "memory")
}

// fallbackWord maps the literal "none" to no fallback.
func fallbackWord(v string) string {
	if strings.EqualFold(strings.TrimSpace(v), "none") {
		return ""
	}
	return v
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt returns k as an integer or def if unset/invalid.
func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
