package storage

import "context"

// Noop is the store used when no durable storage is available. Loads report
// absent, saves are discarded, and the watch never fires. Running without
// persistence is a first-class mode, not an error.
type Noop struct{}

// NewNoop returns a store that persists nothing.
func NewNoop() Noop {
	return Noop{}
}

// Load always reports an absent record.
func (Noop) Load(context.Context) ([]byte, bool, error) {
	return nil, false, nil
}

// Save discards the record.
func (Noop) Save(context.Context, []byte) error {
	return nil
}

// Watch registers nothing; there is no store for another context to mutate.
func (Noop) Watch(func()) (func(), error) {
	return func() {}, nil
}

// Close is a no-op.
func (Noop) Close() error {
	return nil
}
