package storage_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/gospia/gospia/backend/internal/storage"
)

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := storage.Open(""); err == nil {
		t.Fatal("expected error for empty db path")
	}
}

func TestPutGetDelete(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}
	defer store.Close()

	if _, err := store.Get("gospia_tier"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Get on empty store = %v, want ErrNotFound", err)
	}

	if err := store.Put("gospia_tier", "Free"); err != nil {
		t.Fatalf("Put err: %v", err)
	}
	if err := store.Put("gospia_tier", "Pro"); err != nil {
		t.Fatalf("Put overwrite err: %v", err)
	}

	value, err := store.Get("gospia_tier")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if value != "Pro" {
		t.Fatalf("Get = %q, want Pro", value)
	}

	if err := store.Delete("gospia_tier"); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
	if _, err := store.Get("gospia_tier"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}

	// Deleting a missing key is not an error.
	if err := store.Delete("gospia_tier"); err != nil {
		t.Fatalf("Delete of missing key err: %v", err)
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "snapshot.db")

	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}
	if err := store.Put("gospia_user", `{"name":"Ana","email":"ana@x.com"}`); err != nil {
		t.Fatalf("Put err: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close err: %v", err)
	}

	reopened, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen err: %v", err)
	}
	defer reopened.Close()

	value, err := reopened.Get("gospia_user")
	if err != nil {
		t.Fatalf("Get after reopen err: %v", err)
	}
	if value != `{"name":"Ana","email":"ana@x.com"}` {
		t.Fatalf("unexpected value %q", value)
	}
}
