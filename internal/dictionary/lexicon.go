package dictionary

import (
	"fmt"

	"github.com/Comtister/WordScramble/assets"
	"github.com/Comtister/WordScramble/internal/words"
)

// LoadLexicon reads the word list used to seed a checker. An empty path
// selects the lexicon bundled for language; a language with no bundled
// lexicon and no path is an error.
func LoadLexicon(path, language string) ([]string, error) {
	if path != "" {
		list, err := words.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("dictionary: read %s: %w", path, err)
		}
		return list, nil
	}
	name, ok := assets.Lexicon(language)
	if !ok {
		return nil, fmt.Errorf("dictionary: no bundled lexicon for language %q", language)
	}
	f, err := assets.FS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("dictionary: open %s: %w", name, err)
	}
	defer f.Close()
	return words.Parse(f)
}
