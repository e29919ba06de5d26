package history_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"voxnote/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i, name := range []string{"a", "b", "c"} {
		err := store.Record(ctx, history.Entry{
			AudioPath:       "/vault/" + name + ".m4a",
			NotePath:        "/vault/" + name + ".md",
			Language:        "en",
			Model:           "small",
			TranscriptChars: 10 * (i + 1),
			Duration:        1500 * time.Millisecond,
			RequestID:       "req-" + name,
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Record %s: %v", name, err)
		}
	}

	entries, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].NotePath != "/vault/c.md" || entries[1].NotePath != "/vault/b.md" {
		t.Fatalf("unexpected order: %+v", entries)
	}
	first := entries[0]
	if first.Language != "en" || first.Model != "small" || first.RequestID != "req-c" {
		t.Fatalf("unexpected fields: %+v", first)
	}
	if first.Duration != 1500*time.Millisecond || first.TranscriptChars != 30 {
		t.Fatalf("unexpected metrics: %+v", first)
	}
	if !first.CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("created_at = %v", first.CreatedAt)
	}
}

func TestRecordRequiresPaths(t *testing.T) {
	store := openStore(t)
	if err := store.Record(context.Background(), history.Entry{AudioPath: "/a.m4a"}); err == nil {
		t.Fatal("expected error for missing note path")
	}
}

func TestListEmpty(t *testing.T) {
	store := openStore(t)
	entries, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Record(context.Background(), history.Entry{AudioPath: "/a.wav", NotePath: "/a.md"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	_ = store.Close()

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	entries, err := reopened.List(context.Background(), 10)
	if err != nil || len(entries) != 1 {
		t.Fatalf("List after reopen = %d entries, err %v", len(entries), err)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := history.Open(path); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
