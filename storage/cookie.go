package storage

import (
	"fmt"
	"net/http"
	"net/url"
)

// CookieMirror mirrors the session record into an [http.CookieJar] under the
// same well-known key, so a server receiving requests that carry the jar's
// cookies can read the session without a dedicated endpoint.
//
// Attributes follow the transport of the configured origin: a secure origin
// gets SameSite=Lax with Secure, anything else SameSite=None without Secure.
type CookieMirror struct {
	jar    http.CookieJar
	origin *url.URL
	name   string
}

// NewCookieMirror builds a mirror writing cookies scoped to origin
// (scheme://host). name defaults to [DefaultKey] when empty. A nil jar is
// allowed and produces a mirror whose Set is a no-op.
func NewCookieMirror(jar http.CookieJar, origin string, name string) (*CookieMirror, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("storage: parse origin %q: %w", origin, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("storage: origin %q must be scheme://host", origin)
	}
	if name == "" {
		name = DefaultKey
	}
	return &CookieMirror{jar: jar, origin: u, name: name}, nil
}

// Set writes the payload as a cookie on the mirror's origin. Best-effort: a
// nil mirror or jar does nothing.
func (m *CookieMirror) Set(payload []byte) {
	if m == nil || m.jar == nil {
		return
	}
	cookie := &http.Cookie{
		Name:  m.name,
		Value: url.QueryEscape(string(payload)),
		Path:  "/",
	}
	if m.origin.Scheme == "https" {
		cookie.SameSite = http.SameSiteLaxMode
		cookie.Secure = true
	} else {
		cookie.SameSite = http.SameSiteNoneMode
	}
	m.jar.SetCookies(m.origin, []*http.Cookie{cookie})
}
