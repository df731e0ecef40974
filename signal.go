package authsession

import "sync"

type signalSubscriber struct {
	id uint64
	fn func(SessionStatusInfo)
}

// Signal is a single-slot broadcast channel holding the current session
// status. New subscribers immediately receive the latest published value;
// publishing replaces the value and notifies every subscriber synchronously,
// in subscription order. There is no buffering beyond the latest slot.
//
// Callbacks run inline on the publishing call stack with no re-entrancy
// guard: a subscriber that publishes again will recurse. The controller's
// expiry handling is the only subscriber in this package that does so, and
// it terminates in one hop (see [Controller.NotifySessionExpired]).
type Signal struct {
	mu      sync.Mutex
	latest  SessionStatusInfo
	subs    []signalSubscriber
	nextID  uint64
	seq     uint64 // last reserved publish slot
	applied uint64 // slot of the latest value
}

// NewSignal creates a Signal primed with the logged-out default, so the
// first subscriber in a fresh context observes {loggedIn:false, timestamp:0}.
func NewSignal() *Signal {
	return &Signal{latest: defaultSessionStatus()}
}

// Subscribe registers fn, invokes it immediately with the latest value, and
// returns a handle that deregisters it.
func (s *Signal) Subscribe(fn func(SessionStatusInfo)) (cancel func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, signalSubscriber{id: id, fn: fn})
	latest := s.latest
	s.mu.Unlock()

	fn(latest)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish stores v as the latest value and notifies all current subscribers.
// Callbacks are invoked outside the internal lock so a re-entrant Publish
// recurses instead of deadlocking.
func (s *Signal) Publish(v SessionStatusInfo) {
	s.publishAt(v, s.reserve())
}

// reserve allocates the next publish slot. A publisher that must order its
// value relative to other work (the controller orders against its persist)
// reserves while holding its own lock and publishes after releasing it.
func (s *Signal) reserve() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// publishAt delivers v for a reserved slot. A value that lost the race to a
// later slot is dropped entirely: the newer value is already the latest and
// its own delivery covers the subscribers, so latest never moves backwards.
func (s *Signal) publishAt(v SessionStatusInfo, slot uint64) {
	s.mu.Lock()
	if slot < s.applied {
		s.mu.Unlock()
		return
	}
	s.applied = slot
	s.latest = v
	subs := make([]signalSubscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Peek returns the latest value without subscribing.
func (s *Signal) Peek() SessionStatusInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}
