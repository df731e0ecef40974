package authsession

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/renovault/authsession/storage"
	"github.com/sirupsen/logrus"
)

// timeNow is swapped by tests.
var timeNow = time.Now

func nowSeconds() float64 {
	return float64(timeNow().UnixMilli()) / 1000
}

// SessionUpdate is the input to [Controller.UpdateSession]. Data carries the
// candidate fields (nil means none); LoggedIn is the asserted login state;
// UseTimestamp, when set, overrides the persisted timestamp instead of
// "now" - used when re-hydrating from storage so the record does not imply
// a fresher backend check than actually happened; SessionExpired marks the
// update as triggered by an expiry notification and carries the expiry
// marker of the current state into the persisted record.
type SessionUpdate struct {
	Data           *SessionStatusInfo
	LoggedIn       bool
	UseTimestamp   *float64
	SessionExpired bool
}

// Controller is the session reconciliation and propagation engine. It owns
// the single source-of-truth [Signal], the durable [storage.Store] with its
// cookie mirror, the shared outgoing header table, and the cached user,
// token, and roles.
//
// One Controller per execution context; it is created at startup from the
// stored record and torn down with the context via [Controller.Close]. Pass
// it explicitly to anything that needs to observe or mutate session state.
type Controller struct {
	mu  sync.Mutex
	cfg Config
	log logrus.FieldLogger

	signal  *Signal
	store   storage.Store
	cookies *storage.CookieMirror
	headers http.Header

	useJWT       bool
	capability   Capability
	currentUser  string
	currentToken string
	roles        []string

	expiryCancel func()
	watchCancel  func()
}

// NewController builds a controller from cfg, loads the stored session
// record (keeping the record's own timestamp), registers the expiry
// handler, and starts watching the store for external mutations.
//
// Enabling JWT mode when the capability probe reports the required backend
// extension missing fails here, not at call time.
func NewController(cfg Config) (*Controller, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:     cfg,
		log:     cfg.Logger,
		signal:  NewSignal(),
		store:   cfg.Store,
		headers: cfg.Headers,
	}
	if cfg.CookieJar != nil {
		mirror, err := storage.NewCookieMirror(cfg.CookieJar, cfg.Origin, cfg.SessionKey)
		if err != nil {
			return nil, err
		}
		c.cookies = mirror
	}
	if err := c.EnableJWT(cfg.UseJWT); err != nil {
		return nil, err
	}

	c.expiryCancel = c.signal.Subscribe(c.onSessionStatus)
	c.hydrateFromStore(context.Background())

	cancel, err := c.store.Watch(func() {
		c.hydrateFromStore(context.Background())
	})
	if err != nil {
		// A context without change notifications still works; it just
		// won't hear other contexts until its next reload.
		c.log.WithError(err).Warn("session store watch unavailable")
	} else {
		c.watchCancel = cancel
	}
	return c, nil
}

// Close stops the store watch and the internal expiry subscription. The
// store and header table are caller-owned and left untouched.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	if c.watchCancel != nil {
		c.watchCancel()
	}
	if c.expiryCancel != nil {
		c.expiryCancel()
	}
}

// Signal returns the session status signal for subscription.
func (c *Controller) Signal() *Signal {
	return c.signal
}

// Subscribe registers fn with the session signal. Shorthand for
// Signal().Subscribe.
func (c *Controller) Subscribe(fn func(SessionStatusInfo)) (cancel func()) {
	return c.signal.Subscribe(fn)
}

// Status returns the current session status without subscribing.
func (c *Controller) Status() SessionStatusInfo {
	return c.signal.Peek()
}

// CurrentUser returns the identifier of the logged-in user, or "".
func (c *Controller) CurrentUser() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentUser
}

// JWTEnabled reports whether tokens are installed on outgoing requests.
func (c *Controller) JWTEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.useJWT
}

// EnableJWT toggles JWT mode. Enabling it verifies through the platform
// probe that the backend supports JWT login; the check is skipped when the
// core extension reports a version or no probe is configured.
func (c *Controller) EnableJWT(enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if enabled && c.cfg.Probe != nil && c.cfg.Probe.GetAppVersion(c.cfg.CoreExtension) == "" {
		if err := c.cfg.Probe.CheckAppInstalled([]string{jwtFeatureName}); err != nil {
			return fmt.Errorf("%w: %v", ErrJWTUnavailable, err)
		}
	}
	c.useJWT = enabled
	return nil
}

// CachedRoles returns the cached roles of the current user.
func (c *Controller) CachedRoles() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	roles := make([]string, len(c.roles))
	copy(roles, c.roles)
	return roles
}

// SetCachedRoles stores the roles fetched via
// [Capability.GetCurrentUserRoles]. The cache is dropped on logout.
func (c *Controller) SetCachedRoles(roles []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roles = append([]string(nil), roles...)
}

// ClearCache drops the cached roles.
func (c *Controller) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roles = nil
}

// UpdateSession reconciles a candidate session state against the current
// one. When the two are semantically identical (ignoring timestamp and the
// human-readable home-page and message hints) nothing happens. Otherwise the
// application cache hook runs, the merged record is persisted and mirrored,
// the token, language, and user side effects are applied, and the settled
// record is published - in that order, so subscribers never observe
// partially applied state.
func (c *Controller) UpdateSession(ctx context.Context, update SessionUpdate) {
	c.mu.Lock()

	old := c.signal.Peek()
	var candidate SessionStatusInfo
	if update.Data != nil {
		candidate = update.Data.Clone()
	}
	candidate.LoggedIn = update.LoggedIn
	candidate.Timestamp = 0
	if update.LoggedIn {
		candidate.CurrentUser = candidate.User
	} else {
		// Logged out implies no user and no credential, whatever the
		// candidate carried.
		candidate.CurrentUser = ""
		candidate.Token = ""
	}

	if equalIgnoringVolatile(old, candidate) {
		c.mu.Unlock()
		return
	}

	token := candidate.Token
	if c.cfg.Cache != nil {
		c.cfg.Cache.ClearCache()
	}

	record := candidate.Clone()
	if update.UseTimestamp != nil {
		record.Timestamp = *update.UseTimestamp
	} else {
		record.Timestamp = nowSeconds()
	}
	if update.SessionExpired {
		// Keep the expiry marker in the persisted record (front-ends use
		// it for re-login prompts) without reintroducing it into the
		// compared candidate.
		record.SessionExpired = old.SessionExpired
	}
	// The publish slot is reserved while the lock is held, so slot order
	// matches persist order even when a store-watch hydration races a
	// caller's update.
	slot := c.signal.reserve()
	c.persist(ctx, record)

	if candidate.LoggedIn {
		if token != "" {
			// A plain status check does not return a token; keep the
			// installed one in that case.
			c.setAuthToken(token)
		}
		if candidate.Lang != "" && c.cfg.Translate != nil {
			c.cfg.Translate.SetCurrentLanguage(candidate.Lang)
		}
		if c.cfg.Translate != nil && c.cfg.Probe != nil &&
			c.cfg.Probe.GetAppVersion(c.cfg.CoreExtension) != "" {
			c.cfg.Translate.LoadTranslations()
		}
		c.currentUser = candidate.User
	} else {
		c.clearAuthToken()
		c.roles = nil
		c.currentUser = ""
	}

	c.log.WithFields(logrus.Fields{
		"logged_in": record.LoggedIn,
		"user":      record.CurrentUser,
	}).Debug("session updated")

	// Publish after every side effect has settled. The lock is released
	// first so subscriber callbacks may call back into the controller; the
	// reserved slot keeps the signal's latest value from ending up behind
	// the store if a newer update publishes first.
	c.mu.Unlock()
	c.signal.publishAt(record, slot)
}

// NotifySessionExpired publishes the current session marked expired. It is
// the entry point for the request layer's unauthorized-response handler and
// for [ExpiryWatcher]. The internal subscriber then reconciles the state to
// logged-out exactly once per actual expiry transition.
func (c *Controller) NotifySessionExpired() {
	v := c.signal.Peek()
	expired := true
	v.SessionExpired = &expired
	c.signal.Publish(v)
}

// onSessionStatus reacts to published expiry markers. The stored record acts
// as the loop guard: an expiry-triggered update persists the marker before
// publishing, so the re-entrant invocation of this handler finds the marker
// already present and stops after one hop.
func (c *Controller) onSessionStatus(v SessionStatusInfo) {
	if v.SessionExpired == nil || !*v.SessionExpired {
		return
	}
	stored, ok := c.loadStored(context.Background())
	if !ok || stored.SessionExpired != nil {
		return
	}
	data := v.Clone()
	data.SessionExpired = nil
	ts := v.Timestamp
	c.UpdateSession(context.Background(), SessionUpdate{
		Data:           &data,
		LoggedIn:       false,
		UseTimestamp:   &ts,
		SessionExpired: true,
	})
}

// hydrateFromStore feeds the stored record into reconciliation, keeping the
// record's own timestamp so that a reload in this context does not assert a
// fresher backend check than actually happened. Runs at construction and on
// every external store mutation.
func (c *Controller) hydrateFromStore(ctx context.Context) {
	rec, ok := c.loadStored(ctx)
	if !ok {
		c.UpdateSession(ctx, SessionUpdate{LoggedIn: false})
		return
	}
	ts := rec.Timestamp
	c.UpdateSession(ctx, SessionUpdate{
		Data:         &rec,
		LoggedIn:     rec.LoggedIn,
		UseTimestamp: &ts,
	})
}

func (c *Controller) loadStored(ctx context.Context) (SessionStatusInfo, bool) {
	payload, ok, err := c.store.Load(ctx)
	if err != nil {
		c.log.WithError(err).Warn("session record load failed")
		return SessionStatusInfo{}, false
	}
	if !ok {
		return SessionStatusInfo{}, false
	}
	var rec SessionStatusInfo
	if err := json.Unmarshal(payload, &rec); err != nil {
		c.log.WithError(err).Warn("session record decode failed")
		return SessionStatusInfo{}, false
	}
	return rec, true
}

// persist writes the record to the store and its cookie mirror.
// Best-effort: failures are logged, never propagated, and reconciliation
// itself never fails.
func (c *Controller) persist(ctx context.Context, record SessionStatusInfo) {
	payload, err := json.Marshal(record)
	if err != nil {
		c.log.WithError(err).Warn("session record encode failed")
		return
	}
	if err := c.store.Save(ctx, payload); err != nil {
		c.log.WithError(err).Warn("session record save failed")
	}
	c.cookies.Set(payload)
}
