// Package assets bundles the default word lists and SQL migrations.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed start.txt lexicon_en.txt sql/*.sql
var FS embed.FS

// StartWords is the embedded root word list.
const StartWords = "start.txt"

// Lexicon returns the embedded lexicon file name for language, and whether
// one is bundled.
func Lexicon(language string) (string, bool) {
	switch language {
	case "en":
		return "lexicon_en.txt", true
	}
	return "", false
}

// Migrations exposes the embedded sql/ directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// sql/ is embedded at build time; Sub only fails on a malformed path.
		panic(err)
	}
	return sub
}
