package authsession

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
	"github.com/renovault/authsession/storage"
)

// envConfig is the environment surface for server-side embedding, where the
// controller runs inside a service instead of an interactive client.
type envConfig struct {
	UseJWT      bool   `env:"AUTHSESSION_USE_JWT"`
	SessionKey  string `env:"AUTHSESSION_KEY"`
	Origin      string `env:"AUTHSESSION_ORIGIN"`
	SessionFile string `env:"AUTHSESSION_FILE"`
	RedisAddr   string `env:"AUTHSESSION_REDIS_ADDR"`
	RedisDB     int    `env:"AUTHSESSION_REDIS_DB"`
}

// ConfigFromEnv builds a [Config] from AUTHSESSION_* environment variables.
// AUTHSESSION_REDIS_ADDR selects a Redis-backed store, otherwise
// AUTHSESSION_FILE selects a file-backed one; with neither, the session is
// not persisted. Collaborators and the header table are left for the caller
// to fill in.
func ConfigFromEnv() (Config, error) {
	cfg := defaultConfig()
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.UseJWT = ec.UseJWT
	if ec.SessionKey != "" {
		cfg.SessionKey = ec.SessionKey
	}
	cfg.Origin = ec.Origin
	switch {
	case ec.RedisAddr != "":
		client := redis.NewClient(&redis.Options{Addr: ec.RedisAddr, DB: ec.RedisDB})
		cfg.Store = storage.NewRedis(client, cfg.SessionKey)
	case ec.SessionFile != "":
		cfg.Store = storage.NewFile(ec.SessionFile)
	}
	return cfg, nil
}
