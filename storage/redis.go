package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "authsession:"

// Redis persists the session record in a Redis string and announces every
// save on a companion pub/sub channel. Each store instance carries a random
// origin ID which is published as the message payload, so a context can
// ignore notifications caused by its own writes; the record itself is always
// re-read from the key, never taken from the message.
//
// Concurrent writers are last-write-wins; there is no distributed locking.
type Redis struct {
	client  redis.UniversalClient
	key     string
	channel string
	origin  string

	mu       sync.Mutex
	pubsub   *redis.PubSub
	watching bool
}

// NewRedis returns a Redis-backed store for the record named by key
// (normally [DefaultKey]). All contexts sharing the session must use the
// same key and the same Redis instance.
func NewRedis(client redis.UniversalClient, key string) *Redis {
	if key == "" {
		key = DefaultKey
	}
	return &Redis{
		client:  client,
		key:     redisKeyPrefix + key,
		channel: redisKeyPrefix + key + ":changed",
		origin:  uuid.NewString(),
	}
}

// Load reads the record key. A missing key reports an absent record.
func (r *Redis) Load(ctx context.Context) ([]byte, bool, error) {
	payload, err := r.client.Get(ctx, r.key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: redis get %s: %w", r.key, err)
	}
	return payload, true, nil
}

// Save writes the record and publishes a change notification tagged with
// this store's origin ID.
func (r *Redis) Save(ctx context.Context, payload []byte) error {
	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("storage: redis set %s: %w", r.key, err)
	}
	if err := r.client.Publish(ctx, r.channel, r.origin).Err(); err != nil {
		return fmt.Errorf("storage: redis publish %s: %w", r.channel, err)
	}
	return nil
}

// Watch subscribes to the change channel and runs fn for every notification
// that did not originate from this store instance.
func (r *Redis) Watch(fn func()) (func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watching {
		return nil, ErrWatchActive
	}

	pubsub := r.client.Subscribe(context.Background(), r.channel)
	if _, err := pubsub.Receive(context.Background()); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("storage: redis subscribe %s: %w", r.channel, err)
	}
	r.pubsub = pubsub
	r.watching = true

	go func() {
		for msg := range pubsub.Channel() {
			if msg.Payload == r.origin {
				continue
			}
			fn()
		}
	}()

	return func() { r.stopWatch() }, nil
}

func (r *Redis) stopWatch() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.watching {
		return
	}
	r.pubsub.Close()
	r.pubsub = nil
	r.watching = false
}

// Close stops the watch subscription, if any. The Redis client is owned by
// the caller and is left open.
func (r *Redis) Close() error {
	r.stopWatch()
	return nil
}
