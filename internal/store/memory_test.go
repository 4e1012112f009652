package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Comtister/WordScramble/internal/game"
)

func TestMemoryStoreSaveGet(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(time.Hour)
	s := game.NewSession(game.NewEngine(nil, ""), nil)

	if _, err := st.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := st.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := st.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != s {
		t.Fatal("expected the stored session pointer back")
	}
	if st.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", st.Len())
	}
}

func TestMemoryStoreEvictsIdleSessions(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	st := NewMemoryStore(time.Hour).(*memory)
	st.now = func() time.Time { return clock }

	engine := game.NewEngine(nil, "")
	for i := 0; i < 1000; i++ {
		_ = st.Save(ctx, game.NewSession(engine, nil))
	}
	kept := game.NewSession(engine, nil)
	_ = st.Save(ctx, kept)

	clock = clock.Add(40 * time.Minute)
	if _, err := st.Get(ctx, kept.ID); err != nil {
		t.Fatalf("get within ttl: %v", err)
	}

	clock = clock.Add(40 * time.Minute)
	if n := st.Sweep(); n != 1000 {
		t.Fatalf("expected 1000 evicted, got %d", n)
	}
	if st.Len() != 1 {
		t.Fatalf("expected only the recently used session left, got %d", st.Len())
	}

	clock = clock.Add(2 * time.Hour)
	if _, err := st.Get(ctx, kept.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
	if st.Len() != 0 {
		t.Fatalf("expected lazy eviction on get, got %d", st.Len())
	}
}

func TestMemoryStoreZeroTTLKeepsSessions(t *testing.T) {
	st := NewMemoryStore(0).(*memory)
	st.now = func() time.Time { return time.Unix(0, 0) }
	s := game.NewSession(game.NewEngine(nil, ""), nil)
	_ = st.Save(context.Background(), s)
	st.now = time.Now
	if n := st.Sweep(); n != 0 || st.Len() != 1 {
		t.Fatalf("zero ttl should never evict, swept %d", n)
	}
}

func TestSweepLoopStopsWithContext(t *testing.T) {
	st := NewMemoryStore(time.Nanosecond)
	_ = st.Save(context.Background(), game.NewSession(game.NewEngine(nil, ""), nil))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		SweepLoop(ctx, st, time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(5 * time.Second)
	for st.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("sweeper never evicted the expired session")
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
