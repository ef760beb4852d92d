package cache

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_SetGet(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("k1", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	got, ok, err := s.Get("k1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !ok || string(got) != "value" {
		t.Errorf("Get = (%q, %v), want (value, true)", got, ok)
	}
}

func TestStore_MissingKey(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.Get("absent")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if ok {
		t.Error("absent key reported as present")
	}
}

func TestStore_ExpiredEntryInvisible(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("k1", []byte("stale"), -time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	// Negative TTL opts out of caching entirely.
	if _, ok, _ := s.Get("k1"); ok {
		t.Error("entry with non-positive ttl should never be readable")
	}
}

func TestStore_Overwrite(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("k1", []byte("old"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k1", []byte("new"), time.Minute); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.Get("k1")
	if err != nil || !ok {
		t.Fatalf("Get = (%v, %v)", err, ok)
	}
	if string(got) != "new" {
		t.Errorf("value = %q, want new", got)
	}
}

func TestKey_StableAndDistinct(t *testing.T) {
	a := Key("workitems", "GET", "/items")
	b := Key("workitems", "GET", "/items")
	c := Key("workitems", "GET", "/other")
	if a != b {
		t.Error("identical parts must produce identical keys")
	}
	if a == c {
		t.Error("different parts must produce different keys")
	}
	if len(a) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(a))
	}
}
