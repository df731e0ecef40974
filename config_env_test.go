package authsession

import (
	"path/filepath"
	"testing"

	"github.com/renovault/authsession/storage"
)

func TestConfigFromEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "session.json")
	t.Setenv("AUTHSESSION_USE_JWT", "true")
	t.Setenv("AUTHSESSION_KEY", "staging_session")
	t.Setenv("AUTHSESSION_ORIGIN", "https://app.example.com")
	t.Setenv("AUTHSESSION_FILE", file)

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if !cfg.UseJWT {
		t.Fatalf("UseJWT not read from environment")
	}
	if cfg.SessionKey != "staging_session" {
		t.Fatalf("SessionKey = %q", cfg.SessionKey)
	}
	if cfg.Origin != "https://app.example.com" {
		t.Fatalf("Origin = %q", cfg.Origin)
	}
	if _, ok := cfg.Store.(*storage.File); !ok {
		t.Fatalf("Store = %T, want *storage.File", cfg.Store)
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.SessionKey != storage.DefaultKey {
		t.Fatalf("SessionKey = %q, want %q", cfg.SessionKey, storage.DefaultKey)
	}
	if _, ok := cfg.Store.(storage.Noop); !ok {
		t.Fatalf("Store = %T, want storage.Noop", cfg.Store)
	}
}
