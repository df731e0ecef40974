package authsession

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/renovault/authsession/storage"
	"github.com/sirupsen/logrus"
)

/*
====================================
COLLABORATORS
====================================
*/

// CacheInvalidator clears application caches keyed by identity or session.
// Invoked on every real session change, before any other side effect.
type CacheInvalidator interface {
	ClearCache()
}

// Translator is the language subsystem. SetCurrentLanguage is called when a
// login carries a language; LoadTranslations preloads translation bundles
// when the backend reports the core extension.
type Translator interface {
	SetCurrentLanguage(lang string)
	LoadTranslations()
}

// PlatformProbe answers questions about the backend installation.
// GetAppVersion returns the installed version of an extension, or "" when it
// is absent. CheckAppInstalled returns a descriptive error when any of the
// named features is unavailable.
type PlatformProbe interface {
	GetAppVersion(extension string) string
	CheckAppInstalled(features []string) error
}

/*
====================================
CONFIG
====================================
*/

// jwtFeatureName is the backend feature that must be installed before JWT
// mode may be enabled.
const jwtFeatureName = "Login using JWT"

// Config carries everything a [Controller] needs. Construct it directly or
// through [Builder]; instances are treated as immutable after the controller
// is built.
type Config struct {
	// UseJWT installs issued tokens on the outgoing header table. When
	// false, tokens returned by the backend are actively discarded.
	UseJWT bool
	// SessionKey names the durable record and its cookie mirror. Every
	// context sharing the session must use the same key.
	SessionKey string
	// Origin is the scheme://host the cookie mirror scopes its cookies to.
	// Empty disables the mirror.
	Origin string
	// CoreExtension is the backend extension whose presence enables JWT
	// mode and translation preloading.
	CoreExtension string
	// Store persists the session record. Defaults to [storage.Noop]:
	// running without durable storage is a supported mode.
	Store storage.Store
	// CookieJar receives the mirrored session cookie. Optional.
	CookieJar http.CookieJar
	// Headers is the shared outgoing-request header table the token is
	// installed into. Defaults to a fresh table.
	Headers http.Header
	// Cache, Translate, and Probe are the application collaborators.
	// All optional.
	Cache     CacheInvalidator
	Translate Translator
	Probe     PlatformProbe
	// Logger receives session-update debug logs and deprecation warnings.
	// Defaults to a discarding logger.
	Logger logrus.FieldLogger
}

func defaultConfig() Config {
	return Config{
		SessionKey:    storage.DefaultKey,
		CoreExtension: "core",
		Store:         storage.NewNoop(),
		Headers:       make(http.Header),
		Logger:        discardLogger(),
	}
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func (c *Config) applyDefaults() {
	def := defaultConfig()
	if c.SessionKey == "" {
		c.SessionKey = def.SessionKey
	}
	if c.CoreExtension == "" {
		c.CoreExtension = def.CoreExtension
	}
	if c.Store == nil {
		c.Store = def.Store
	}
	if c.Headers == nil {
		c.Headers = def.Headers
	}
	if c.Logger == nil {
		c.Logger = def.Logger
	}
}

func (c *Config) validate() error {
	if c.Origin != "" {
		u, err := url.Parse(c.Origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: origin %q must be scheme://host", ErrInvalidConfig, c.Origin)
		}
	}
	if c.CookieJar != nil && c.Origin == "" {
		return fmt.Errorf("%w: cookie jar requires an origin", ErrInvalidConfig)
	}
	return nil
}
