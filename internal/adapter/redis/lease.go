// Package redisadapter provides the Redis-backed job lease that keeps one
// replica running each periodic job at a time.
package redisadapter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"mesa-budget/internal/config/configs"
	"mesa-budget/internal/core/port"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lease taken over by another replica is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// NewClient connects to Redis and verifies connectivity.
func NewClient(ctx context.Context, cfg configs.Redis) (*redis.Client, error) {
	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return rc, nil
}

// Lease hands out SET NX PX leases keyed by job name.
type Lease struct {
	rc     redis.Cmdable
	prefix string
}

// NewLease returns a lease store writing keys under prefix.
func NewLease(rc redis.Cmdable, prefix string) *Lease {
	return &Lease{rc: rc, prefix: prefix}
}

// Acquire tries to take the lease for name. ok is false when another holder
// owns it. The returned release is safe to call once the job is done.
func (l *Lease) Acquire(ctx context.Context, name string, ttl time.Duration) (release func(), ok bool, err error) {
	key := l.prefix + name
	token := uuid.NewString()
	ok, err = l.rc.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lease %s: %w: %w", name, port.ErrStoreUnavailable, err)
	}
	if !ok {
		return nil, false, nil
	}
	return func() {
		_ = releaseScript.Run(context.WithoutCancel(ctx), l.rc, []string{key}, token).Err()
	}, true, nil
}
