package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func waitForStorage(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFile(path)
	defer store.Close()

	ctx := context.Background()
	if _, ok, err := store.Load(ctx); err != nil || ok {
		t.Fatalf("Load before save: ok=%v err=%v", ok, err)
	}

	record := []byte(`{"loggedIn":true,"timestamp":42}`)
	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := store.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load after save: ok=%v err=%v", ok, err)
	}
	if string(got) != string(record) {
		t.Fatalf("Load = %s, want %s", got, record)
	}
}

func TestFileWatchSeesExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFile(path)
	defer store.Close()

	var fired atomic.Int64
	cancel, err := store.Watch(func() { fired.Add(1) })
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer cancel()

	// Simulate another process replacing the record.
	if err := os.WriteFile(path, []byte(`{"loggedIn":true,"timestamp":1}`), 0o600); err != nil {
		t.Fatalf("external write: %v", err)
	}

	waitForStorage(t, 2*time.Second, "watch notification", func() bool {
		return fired.Load() > 0
	})
}

func TestFileWatchSingleListener(t *testing.T) {
	store := NewFile(filepath.Join(t.TempDir(), "session.json"))
	defer store.Close()

	cancel, err := store.Watch(func() {})
	if err != nil {
		t.Fatalf("first Watch: %v", err)
	}
	if _, err := store.Watch(func() {}); !errors.Is(err, ErrWatchActive) {
		t.Fatalf("second Watch: err = %v, want ErrWatchActive", err)
	}

	// After cancelling, a new listener may register.
	cancel()
	again, err := store.Watch(func() {})
	if err != nil {
		t.Fatalf("Watch after cancel: %v", err)
	}
	again()
}
