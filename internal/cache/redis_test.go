package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func restoreRedis() {
	redisNewClient = func(o *redis.Options) Cache { return redis.NewClient(o) }
}

func TestNewRedisClient(t *testing.T) {
	t.Run("options", func(t *testing.T) {
		t.Cleanup(restoreRedis)
		var opts *redis.Options
		stub := &FakeCache{}
		redisNewClient = func(o *redis.Options) Cache {
			opts = o
			return stub
		}

		c, err := NewRedisClient(context.Background(), "127.0.0.1:6379", "secret", 1)
		require.NoError(t, err)
		require.Equal(t, stub, c)
		require.Equal(t, "127.0.0.1:6379", opts.Addr)
		require.Equal(t, "secret", opts.Password)
		require.Equal(t, 1, opts.DB)
	})

	t.Run("ping fail closes client", func(t *testing.T) {
		t.Cleanup(restoreRedis)
		closed := false
		redisNewClient = func(o *redis.Options) Cache {
			return &FakeCache{
				PingFn:  func(context.Context) *redis.StatusCmd { return redis.NewStatusResult("", errors.New("fail")) },
				CloseFn: func() error { closed = true; return nil },
			}
		}

		c, err := NewRedisClient(context.Background(), "addr", "", 0)
		require.Error(t, err)
		require.Nil(t, c)
		require.True(t, closed)
	})

	t.Run("miniredis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		c, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
		require.NoError(t, err)
		defer c.Close()

		ctx := context.Background()
		require.Equal(t, int64(1), c.Incr(ctx, "n").Val())
		require.True(t, c.Expire(ctx, "n", time.Minute).Val())
		require.Equal(t, time.Minute, c.TTL(ctx, "n").Val())
	})
}
