package authsession

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiryWatcher schedules an expiry notification from the unverified exp
// claim of the current token. The claim is only read, never validated: the
// token stays an opaque bearer credential and the backend remains the
// authority on whether the session is actually alive. A watcher is optional;
// without one, expiry notifications come solely from the request layer.
type ExpiryWatcher struct {
	controller *Controller

	mu     sync.Mutex
	timer  *time.Timer
	cancel func()
	closed bool
}

// WatchTokenExpiry subscribes a watcher to the controller's session signal.
// Whenever a logged-in session with a parseable token is published, a timer
// is armed for its exp claim and fires [Controller.NotifySessionExpired].
func WatchTokenExpiry(c *Controller) *ExpiryWatcher {
	w := &ExpiryWatcher{controller: c}
	w.cancel = c.Subscribe(w.onSession)
	return w
}

func (w *ExpiryWatcher) onSession(v SessionStatusInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.closed || !v.LoggedIn || v.Token == "" {
		return
	}
	if v.SessionExpired != nil && *v.SessionExpired {
		return
	}
	exp, ok := tokenExpiry(v.Token)
	if !ok {
		return
	}
	delay := time.Until(exp)
	if delay < 0 {
		delay = 0
	}
	w.timer = time.AfterFunc(delay, w.controller.NotifySessionExpired)
}

// Close disarms the watcher.
func (w *ExpiryWatcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

// tokenExpiry reads the exp claim without verifying the signature.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
