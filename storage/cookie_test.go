package storage

import (
	"net/http"
	"net/url"
	"testing"
)

// recordingJar captures SetCookies calls; net/http/cookiejar strips
// attributes on storage, which would hide exactly what this test asserts.
type recordingJar struct {
	origin  *url.URL
	cookies []*http.Cookie
}

func (j *recordingJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.origin = u
	j.cookies = append(j.cookies, cookies...)
}

func (j *recordingJar) Cookies(*url.URL) []*http.Cookie {
	return j.cookies
}

func TestCookieMirrorSecureOrigin(t *testing.T) {
	jar := &recordingJar{}
	mirror, err := NewCookieMirror(jar, "https://app.example.com", "")
	if err != nil {
		t.Fatalf("NewCookieMirror: %v", err)
	}

	mirror.Set([]byte(`{"loggedIn":true}`))

	if len(jar.cookies) != 1 {
		t.Fatalf("cookies written = %d, want 1", len(jar.cookies))
	}
	cookie := jar.cookies[0]
	if cookie.Name != DefaultKey {
		t.Fatalf("cookie name = %q, want %q", cookie.Name, DefaultKey)
	}
	if !cookie.Secure || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("secure origin attributes = secure=%v samesite=%v, want Secure+Lax", cookie.Secure, cookie.SameSite)
	}
	if jar.origin.Host != "app.example.com" {
		t.Fatalf("cookie scoped to %q", jar.origin)
	}
	if got, err := url.QueryUnescape(cookie.Value); err != nil || got != `{"loggedIn":true}` {
		t.Fatalf("cookie value = %q (%v)", cookie.Value, err)
	}
}

func TestCookieMirrorInsecureOrigin(t *testing.T) {
	jar := &recordingJar{}
	mirror, err := NewCookieMirror(jar, "http://localhost:8000", "dev_session")
	if err != nil {
		t.Fatalf("NewCookieMirror: %v", err)
	}

	mirror.Set([]byte(`{}`))

	cookie := jar.cookies[0]
	if cookie.Name != "dev_session" {
		t.Fatalf("cookie name = %q", cookie.Name)
	}
	if cookie.Secure || cookie.SameSite != http.SameSiteNoneMode {
		t.Fatalf("insecure origin attributes = secure=%v samesite=%v, want None without Secure", cookie.Secure, cookie.SameSite)
	}
}

func TestCookieMirrorValidation(t *testing.T) {
	if _, err := NewCookieMirror(nil, "example.com", ""); err == nil {
		t.Fatalf("origin without scheme accepted")
	}

	// A nil jar yields a silent no-op mirror.
	mirror, err := NewCookieMirror(nil, "https://app.example.com", "")
	if err != nil {
		t.Fatalf("NewCookieMirror with nil jar: %v", err)
	}
	mirror.Set([]byte(`{}`))

	var absent *CookieMirror
	absent.Set([]byte(`{}`))
}
