package room

import (
	"sync"
	"testing"
	"time"
)

func TestStoreJoinAndGet(t *testing.T) {
	t.Parallel()

	s := NewStore()
	p, err := s.Join("u1", "alice", "es")
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if p.ID != "u1" || p.Name != "alice" || p.TargetLanguage != "es" {
		t.Errorf("unexpected participant: %+v", p)
	}

	got, ok := s.Get("u1")
	if !ok {
		t.Fatal("expected member u1")
	}
	if got != p {
		t.Errorf("Get returned %+v, want %+v", got, p)
	}
}

func TestStoreJoinEmptyID(t *testing.T) {
	t.Parallel()

	s := NewStore()
	if _, err := s.Join("", "alice", "es"); err != ErrEmptyID {
		t.Errorf("expected ErrEmptyID, got %v", err)
	}
}

func TestStoreJoinDefaultsName(t *testing.T) {
	t.Parallel()

	s := NewStore()
	p, err := s.Join("u1", "", "es")
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if p.Name != DefaultName {
		t.Errorf("expected default name %q, got %q", DefaultName, p.Name)
	}
}

func TestStoreRejoinReplacesButKeepsJoinTime(t *testing.T) {
	t.Parallel()

	s := NewStore()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	s.now = func() time.Time { return now }

	first, _ := s.Join("u1", "alice", "es")
	now = base.Add(time.Minute)
	second, _ := s.Join("u1", "alicia", "fr")

	if second.Name != "alicia" || second.TargetLanguage != "fr" {
		t.Errorf("rejoin did not replace fields: %+v", second)
	}
	if !second.JoinedAt.Equal(first.JoinedAt) {
		t.Errorf("rejoin changed join time: %v vs %v", second.JoinedAt, first.JoinedAt)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 member after rejoin, got %d", s.Len())
	}
}

func TestStoreLeaveIdempotent(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Join("u1", "alice", "es")

	if !s.Leave("u1") {
		t.Error("first Leave should report removal")
	}
	if s.Leave("u1") {
		t.Error("second Leave should be a no-op")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d members", s.Len())
	}
}

func TestStoreUpdateLanguage(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Join("u1", "alice", "es")

	if !s.UpdateLanguage("u1", "de") {
		t.Error("expected update to apply")
	}
	p, _ := s.Get("u1")
	if p.TargetLanguage != "de" {
		t.Errorf("expected targetLanguage de, got %q", p.TargetLanguage)
	}

	// updates for departed sessions are silently skipped
	if s.UpdateLanguage("ghost", "fr") {
		t.Error("expected update for unknown id to be skipped")
	}
}

func TestStoreSnapshotOrdering(t *testing.T) {
	t.Parallel()

	s := NewStore()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	s.now = func() time.Time { return now }

	s.Join("b", "second", "es")
	now = base.Add(time.Second)
	s.Join("c", "third", "fr")
	now = base // same instant as "b": id breaks the tie
	s.Join("a", "tied", "de")

	snap := s.Snapshot()
	ids := make([]string, len(snap))
	for i, p := range snap {
		ids[i] = p.ID
	}
	want := []string{"a", "b", "c"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("snapshot order = %v, want %v", ids, want)
		}
	}
}

func TestStoreDistinctTargetLanguages(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Join("a", "sender", "en")
	s.Join("b", "bob", "es")
	s.Join("c", "carol", "fr")
	s.Join("d", "dave", "es")
	s.Join("e", "erin", "en") // source language, needs no translation

	langs := s.DistinctTargetLanguages("a", "en")
	if len(langs) != 2 || langs[0] != "es" || langs[1] != "fr" {
		t.Errorf("expected [es fr], got %v", langs)
	}

	// the sender's own language never counts
	s.Join("a", "sender", "it")
	langs = s.DistinctTargetLanguages("a", "en")
	if len(langs) != 2 {
		t.Errorf("expected sender exclusion, got %v", langs)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n%26))
			s.Join(id, "user", "es")
			s.UpdateLanguage(id, "fr")
			s.Snapshot()
			s.DistinctTargetLanguages(id, "en")
			if n%2 == 0 {
				s.Leave(id)
			}
		}(i)
	}
	wg.Wait()

	// at most one entry per id regardless of interleaving
	seen := make(map[string]bool)
	for _, p := range s.Snapshot() {
		if seen[p.ID] {
			t.Fatalf("duplicate member %s", p.ID)
		}
		seen[p.ID] = true
	}
}
