package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// File persists the session record as a JSON file and detects mutations by
// other processes with fsnotify. Writes go through a temp file and rename so
// a concurrent reader never observes a partial record.
//
// The watcher cannot distinguish this process's writes from external ones,
// so it may also fire for our own saves; reconciliation of an unchanged
// record is an idempotent no-op, which makes the extra wakeups harmless.
type File struct {
	path string

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	done     chan struct{}
	watching bool
}

// NewFile returns a file-backed store rooted at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads the record file. A missing file reports an absent record.
func (f *File) Load(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	payload, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: read %s: %w", f.path, err)
	}
	return payload, true, nil
}

// Save atomically replaces the record file.
func (f *File) Save(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("storage: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("storage: temp file: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("storage: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("storage: close %s: %w", name, err)
	}
	if err := os.Rename(name, f.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("storage: rename to %s: %w", f.path, err)
	}
	return nil
}

// Watch reports mutations of the record file. The parent directory is
// watched rather than the file itself so renames over the file (including
// our own atomic saves) are observed.
func (f *File) Watch(fn func()) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.watching {
		return nil, ErrWatchActive
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage: mkdir %s: %w", dir, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("storage: fsnotify: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("storage: watch %s: %w", dir, err)
	}

	done := make(chan struct{})
	f.watcher = watcher
	f.done = done
	f.watching = true

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != f.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					fn()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	return func() { f.stopWatch() }, nil
}

func (f *File) stopWatch() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.watching {
		return
	}
	close(f.done)
	f.watcher.Close()
	f.watcher = nil
	f.done = nil
	f.watching = false
}

// Close stops the watcher, if any.
func (f *File) Close() error {
	f.stopWatch()
	return nil
}
