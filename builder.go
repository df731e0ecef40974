package authsession

import (
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/renovault/authsession/storage"
	"github.com/sirupsen/logrus"
)

// Builder assembles a [Controller] step by step. Zero-value fields fall back
// to the defaults documented on [Config].
type Builder struct {
	config     Config
	capability Capability
	built      bool
}

// New returns a Builder primed with defaults.
func New() *Builder {
	return &Builder{config: defaultConfig()}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithStorage sets the durable store.
func (b *Builder) WithStorage(store storage.Store) *Builder {
	b.config.Store = store
	return b
}

// WithRedis is shorthand for a Redis-backed store on the configured
// session key.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.config.Store = storage.NewRedis(client, b.config.SessionKey)
	return b
}

// WithSessionKey overrides the well-known record key. Call before WithRedis.
func (b *Builder) WithSessionKey(key string) *Builder {
	b.config.SessionKey = key
	return b
}

// WithCookieJar enables the cookie mirror on the given origin.
func (b *Builder) WithCookieJar(jar http.CookieJar, origin string) *Builder {
	b.config.CookieJar = jar
	b.config.Origin = origin
	return b
}

// WithHeaders sets the shared outgoing-request header table.
func (b *Builder) WithHeaders(headers http.Header) *Builder {
	b.config.Headers = headers
	return b
}

// WithJWT toggles JWT mode. The availability assertion runs at Build.
func (b *Builder) WithJWT(enabled bool) *Builder {
	b.config.UseJWT = enabled
	return b
}

// WithCache sets the cache-invalidation collaborator.
func (b *Builder) WithCache(cache CacheInvalidator) *Builder {
	b.config.Cache = cache
	return b
}

// WithTranslator sets the language collaborator.
func (b *Builder) WithTranslator(translate Translator) *Builder {
	b.config.Translate = translate
	return b
}

// WithProbe sets the backend capability probe.
func (b *Builder) WithProbe(probe PlatformProbe) *Builder {
	b.config.Probe = probe
	return b
}

// WithLogger sets the logger.
func (b *Builder) WithLogger(log logrus.FieldLogger) *Builder {
	b.config.Logger = log
	return b
}

// WithCapability binds the backend integration the deprecated login shims
// forward to.
func (b *Builder) WithCapability(capability Capability) *Builder {
	b.capability = capability
	return b
}

// Build validates the configuration and constructs the controller. A
// Builder is single-use.
func (b *Builder) Build() (*Controller, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}
	b.built = true
	controller, err := NewController(b.config)
	if err != nil {
		return nil, err
	}
	if b.capability != nil {
		controller.SetCapability(b.capability)
	}
	return controller, nil
}
