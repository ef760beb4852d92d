package audit

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestLog_WriteAndRecent(t *testing.T) {
	l := openTestLog(t)

	entries := []Entry{
		{Tool: "wit-query", Target: "/wiql", Status: StatusOK, Duration: 120 * time.Millisecond},
		{Tool: "repo-file", Target: "/repos/core/readme.md", Status: StatusCacheHit},
		{Tool: "tel-query", Target: "/query", Status: StatusError, Detail: "status 503"},
	}
	for _, e := range entries {
		if err := l.Write(e); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
	}

	recent, err := l.Recent(10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("len(recent) = %d, want 3", len(recent))
	}
	// Newest first.
	if recent[0].Tool != "tel-query" || recent[2].Tool != "wit-query" {
		t.Errorf("order = [%s ... %s], want newest first", recent[0].Tool, recent[2].Tool)
	}
	if recent[0].Status != StatusError || recent[0].Detail != "status 503" {
		t.Errorf("error entry = %+v", recent[0])
	}
	if recent[2].DurationMS != 120 {
		t.Errorf("duration_ms = %d, want 120", recent[2].DurationMS)
	}
}

func TestLog_RecentLimit(t *testing.T) {
	l := openTestLog(t)
	for i := 0; i < 5; i++ {
		if err := l.Write(Entry{Tool: "ent-sets", Target: "/sets", Status: StatusOK}); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := l.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Errorf("len(recent) = %d, want 2", len(recent))
	}
}

func TestLog_RunIDStampedOnEntries(t *testing.T) {
	l := openTestLog(t)
	if l.RunID() == "" {
		t.Fatal("RunID is empty")
	}
	if err := l.Write(Entry{Tool: "sql-tables", Target: "/tables", Status: StatusOK}); err != nil {
		t.Fatal(err)
	}

	recent, err := l.Recent(1)
	if err != nil {
		t.Fatal(err)
	}
	if recent[0].RunID != l.RunID() {
		t.Errorf("entry run id = %q, want %q", recent[0].RunID, l.RunID())
	}
}
