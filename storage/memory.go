package storage

import (
	"context"
	"sync"
)

// MemoryHub is an in-process durable store shared by several execution
// contexts. Each context obtains its own handle via [MemoryHub.Store]; a
// save through one handle notifies the watchers of every other handle,
// mirroring the cross-tab semantics of browser storage events where the
// writing context does not hear its own write.
//
// The hub backs multi-context tests and embedded callers that want session
// sharing without external infrastructure.
type MemoryHub struct {
	mu      sync.Mutex
	payload []byte
	present bool
	stores  []*Memory
}

// NewMemoryHub returns an empty hub.
func NewMemoryHub() *MemoryHub {
	return &MemoryHub{}
}

// Store returns a new per-context handle on the hub.
func (h *MemoryHub) Store() *Memory {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := &Memory{hub: h}
	h.stores = append(h.stores, m)
	return m
}

// Memory is one context's handle on a [MemoryHub].
type Memory struct {
	hub *MemoryHub
	fn  func()
}

// Load reads the shared record.
func (m *Memory) Load(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.hub.mu.Lock()
	defer m.hub.mu.Unlock()
	if !m.hub.present {
		return nil, false, nil
	}
	payload := make([]byte, len(m.hub.payload))
	copy(payload, m.hub.payload)
	return payload, true, nil
}

// Save replaces the shared record and notifies the other handles' watchers
// on background goroutines.
func (m *Memory) Save(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.hub.mu.Lock()
	m.hub.payload = make([]byte, len(payload))
	copy(m.hub.payload, payload)
	m.hub.present = true
	var notify []func()
	for _, other := range m.hub.stores {
		if other != m && other.fn != nil {
			notify = append(notify, other.fn)
		}
	}
	m.hub.mu.Unlock()

	for _, fn := range notify {
		go fn()
	}
	return nil
}

// Watch registers fn to run when another handle saves.
func (m *Memory) Watch(fn func()) (func(), error) {
	m.hub.mu.Lock()
	defer m.hub.mu.Unlock()
	if m.fn != nil {
		return nil, ErrWatchActive
	}
	m.fn = fn
	return func() {
		m.hub.mu.Lock()
		defer m.hub.mu.Unlock()
		m.fn = nil
	}, nil
}

// Close detaches the handle from the hub.
func (m *Memory) Close() error {
	m.hub.mu.Lock()
	defer m.hub.mu.Unlock()
	m.fn = nil
	for i, other := range m.hub.stores {
		if other == m {
			m.hub.stores = append(m.hub.stores[:i], m.hub.stores[i+1:]...)
			break
		}
	}
	return nil
}
