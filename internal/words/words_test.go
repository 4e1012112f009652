package words

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	in := "# comment\n  Silkworm \n\nbook worm\nlisten\r\nx1yz\n"
	got, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"silkworm", "listen"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestInitEmbedded(t *testing.T) {
	l, err := Init("", DefaultFallback)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if l.Len() == 0 {
		t.Fatal("embedded list should not be empty")
	}
	w, err := l.PickRootWord()
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	found := false
	for _, x := range l.Words() {
		if x == w {
			found = true
		}
	}
	if !found {
		t.Fatalf("picked %q not in list", w)
	}
}

func TestInitMissingFileIsError(t *testing.T) {
	_, err := Init(filepath.Join(t.TempDir(), "missing.txt"), DefaultFallback)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestInitFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "start.txt")
	if err := os.WriteFile(path, []byte("listen\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := Init(path, DefaultFallback)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	for i := 0; i < 5; i++ {
		if w, _ := l.PickRootWord(); w != "listen" {
			t.Fatalf("expected listen, got %q", w)
		}
	}
}

func TestEmptyListUsesFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "start.txt")
	if err := os.WriteFile(path, []byte("\n# nothing here\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := Init(path, DefaultFallback)
	if err != nil {
		t.Fatalf("readable empty file should not fail init: %v", err)
	}
	w, err := l.PickRootWord()
	if err != nil || w != DefaultFallback {
		t.Fatalf("expected fallback %q, got %q, %v", DefaultFallback, w, err)
	}
}

func TestEmptyListWithoutFallbackFails(t *testing.T) {
	l := New(nil, "")
	if _, err := l.PickRootWord(); !errors.Is(err, ErrEmptyList) {
		t.Fatalf("expected ErrEmptyList, got %v", err)
	}
}

func TestNonLetterFallbackIsDropped(t *testing.T) {
	for _, fb := range []string{"silk worm", "n0ne", "silk-worm"} {
		l := New(nil, fb)
		if l.Fallback() != "" {
			t.Fatalf("%q: expected fallback dropped, got %q", fb, l.Fallback())
		}
		if _, err := l.PickRootWord(); !errors.Is(err, ErrEmptyList) {
			t.Fatalf("%q: expected ErrEmptyList, got %v", fb, err)
		}
	}
	if l := New(nil, " Bookworm "); l.Fallback() != "bookworm" {
		t.Fatalf("expected normalized fallback, got %q", l.Fallback())
	}
}

func TestPickRootWordCoversList(t *testing.T) {
	l := New([]string{"listen", "silkworm", "bookworm"}, "")
	seen := map[string]bool{}
	for i := 0; i < 300; i++ {
		w, err := l.PickRootWord()
		if err != nil {
			t.Fatalf("pick: %v", err)
		}
		seen[w] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected all three words picked, got %v", seen)
	}
}
