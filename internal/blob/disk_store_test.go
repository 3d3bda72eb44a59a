package blob

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDiskStorePutGetRemove(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	ctx := context.Background()
	payload := []byte("panorama bytes")

	if err := store.Put(ctx, "uploads/panorama-1.jpg", bytes.NewReader(payload), int64(len(payload)), "image/jpeg"); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	rc, err := store.Get(ctx, "uploads/panorama-1.jpg")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	got, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("blob round-trip mismatch: got %q", got)
	}

	if err := store.Remove(ctx, "uploads/panorama-1.jpg"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := store.Get(ctx, "uploads/panorama-1.jpg"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound after removal, got %v", err)
	}
}

func TestDiskStoreGetMissingReturnsNotFound(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	if _, err := store.Get(context.Background(), "uploads/nope.jpg"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestDiskStoreRemoveAbsentSucceeds(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	if err := store.Remove(context.Background(), "uploads/gone.jpg"); err != nil {
		t.Fatalf("expected nil for absent blob, got %v", err)
	}
}

func TestDiskStoreRejectsEscapingPaths(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(root)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	ctx := context.Background()
	for _, p := range []string{"../escape.jpg", "/abs.jpg", ".."} {
		if err := store.Put(ctx, p, bytes.NewReader([]byte("x")), 1, "image/jpeg"); err == nil {
			t.Fatalf("expected error for path %q", p)
		}
	}

	if _, err := os.Stat(filepath.Join(filepath.Dir(root), "escape.jpg")); err == nil {
		t.Fatalf("blob escaped the store root")
	}
}
