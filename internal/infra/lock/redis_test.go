package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/config"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLocker_ReleasesAfterRun(t *testing.T) {
	mr, client := newRedis(t)
	l := NewRedisLocker(client, time.Second, 0)

	ran := false
	err := l.WithLock(context.Background(), "protocol:NUTRI-202501", func(ctx context.Context) error {
		ran = true
		assert.True(t, mr.Exists("lock:protocol:NUTRI-202501"))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, mr.Exists("lock:protocol:NUTRI-202501"))
}

func TestRedisLocker_BusyKey(t *testing.T) {
	mr, client := newRedis(t)
	require.NoError(t, mr.Set("lock:protocol:NUTRI-202501", "someone-else"))

	l := NewRedisLocker(client, time.Second, 60*time.Millisecond)
	err := l.WithLock(context.Background(), "protocol:NUTRI-202501", func(ctx context.Context) error {
		t.Fatal("must not run")
		return nil
	})

	assert.ErrorIs(t, err, ErrNotAcquired)

	got, _ := mr.Get("lock:protocol:NUTRI-202501")
	assert.Equal(t, "someone-else", got, "foreign token must survive")
}

func TestRedisLocker_PropagatesError(t *testing.T) {
	_, client := newRedis(t)
	l := NewRedisLocker(client, time.Second, 0)
	boom := errors.New("boom")

	err := l.WithLock(context.Background(), "k", func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
}

func TestRedisLocker_SerialisesCallers(t *testing.T) {
	_, client := newRedis(t)
	l := NewRedisLocker(client, 2*time.Second, 2*time.Second)

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.WithLock(context.Background(), "k", func(ctx context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestLocalLocker(t *testing.T) {
	l := NewLocalLocker()
	var counter int
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.WithLock(context.Background(), "k", func(ctx context.Context) error {
				v := counter
				time.Sleep(time.Millisecond)
				counter = v + 1
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, counter)
}

func TestFromConfig(t *testing.T) {
	ctx := context.Background()

	l, client, err := FromConfig(ctx, &config.Config{})
	require.NoError(t, err)
	assert.Nil(t, client)
	assert.IsType(t, &LocalLocker{}, l)

	mr := miniredis.RunT(t)
	l, client, err = FromConfig(ctx, &config.Config{RedisAddr: mr.Addr(), ProtocolLockTTL: time.Second})
	require.NoError(t, err)
	require.NotNil(t, client)
	defer client.Close()
	assert.IsType(t, &RedisLocker{}, l)

	addr := mr.Addr()
	mr.Close()
	_, _, err = FromConfig(ctx, &config.Config{RedisAddr: addr, ProtocolLockTTL: time.Second})
	assert.Error(t, err)
}
