package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/config"
)

// FromConfig returns the Redis-backed locker when REDIS_ADDR is set, else a
// LocalLocker. The client is nil in the local case.
func FromConfig(ctx context.Context, cfg *config.Config) (Locker, *redis.Client, error) {
	if !cfg.RedisEnabled() {
		return NewLocalLocker(), nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}

	// wait == ttl: a caller can outlast one crashed holder.
	return NewRedisLocker(client, cfg.ProtocolLockTTL, cfg.ProtocolLockTTL), client, nil
}
