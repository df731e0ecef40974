package storage

import (
	"context"
	"errors"
)

// DefaultKey is the well-known name of the single session record. Every
// context reading or writing the record uses the same key so that all of
// them observe the same session.
const DefaultKey = "client_session_status"

// ErrWatchActive is returned when Watch is called on a store that already
// has a watcher. Each execution context registers exactly one listener.
var ErrWatchActive = errors.New("storage: watch already active")

// Store persists one serialized session record and reports external
// mutations to it.
type Store interface {
	// Load reads the record. The second return is false when no durable
	// storage is available in this context or nothing is stored.
	Load(ctx context.Context) ([]byte, bool, error)
	// Save writes the record. Best-effort: a failed save leaves the
	// previous record in place.
	Save(ctx context.Context, payload []byte) error
	// Watch registers fn to run when another context mutates the record.
	// fn is invoked on a background goroutine and must re-read the store.
	// The returned handle deregisters the watcher.
	Watch(fn func()) (cancel func(), err error)
	// Close releases any watch resources held by the store.
	Close() error
}
