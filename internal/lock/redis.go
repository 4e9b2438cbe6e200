package lock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisTTL   = 30 * time.Second
	defaultRedisRetry = 25 * time.Millisecond
	defaultKeyPrefix  = "lanes:lock:"
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock that was re-acquired by another process is left alone
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker shared by every process pointed at the same Redis.
// Keys expire after TTL so a crashed holder cannot block a column forever.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
	retry  time.Duration
	prefix string
	logger *slog.Logger
}

// RedisOption configures a Redis locker
type RedisOption func(*Redis)

// WithTTL sets how long a held key survives without release
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithRetryInterval sets the polling interval while waiting for a key
func WithRetryInterval(d time.Duration) RedisOption {
	return func(r *Redis) {
		if d > 0 {
			r.retry = d
		}
	}
}

// WithKeyPrefix namespaces lock keys
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithLogger sets the logger used for release failures
func WithLogger(logger *slog.Logger) RedisOption {
	return func(r *Redis) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRedis creates a Redis-backed locker
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		ttl:    defaultRedisTTL,
		retry:  defaultRedisRetry,
		prefix: defaultKeyPrefix,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Compile-time verification that *Redis implements Locker
var _ Locker = (*Redis)(nil)

// Acquire polls SET NX for each key until it is held or ctx is done
func (r *Redis) Acquire(ctx context.Context, keys ...string) (Release, error) {
	return acquireAll(ctx, keys, r.take)
}

func (r *Redis) take(ctx context.Context, key string) (func(), error) {
	redisKey := r.prefix + key
	token := uuid.NewString()

	for {
		ok, err := r.client.SetNX(ctx, redisKey, token, r.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, waitError(ctx, key)
			}
			return nil, fmt.Errorf("failed to acquire %s: %w", key, err)
		}
		if ok {
			return func() { r.release(redisKey, token) }, nil
		}

		timer := time.NewTimer(r.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, waitError(ctx, key)
		case <-timer.C:
		}
	}
}

func (r *Redis) release(redisKey, token string) {
	// The caller's context may already be cancelled; release must still run.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := releaseScript.Run(ctx, r.client, []string{redisKey}, token).Err(); err != nil {
		r.logger.Error("failed to release ordering lock", "key", redisKey, "error", err)
	}
}
