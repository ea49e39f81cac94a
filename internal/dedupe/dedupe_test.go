package dedupe

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(redisOptions(mr.Addr()))
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestEventKey(t *testing.T) {
	assert.Equal(t, "discord:10:42", EventKey("discord", 10, 42))
}

func TestLRU_Seen(t *testing.T) {
	ctx := context.Background()
	d := NewLRU(10, time.Minute)

	seen, err := d.Seen(ctx, "a")
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = d.Seen(ctx, "a")
	require.NoError(t, err)
	assert.True(t, seen)

	seen, _ = d.Seen(ctx, "b")
	assert.False(t, seen)
	assert.Equal(t, 2, d.Len())
}

func TestLRU_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	d := NewLRU(2, time.Minute)

	_, _ = d.Seen(ctx, "a")
	_, _ = d.Seen(ctx, "b")
	_, _ = d.Seen(ctx, "c")

	seen, _ := d.Seen(ctx, "a")
	assert.False(t, seen, "evicted key should count as new")
}

func TestLRU_ConcurrentSameKey(t *testing.T) {
	ctx := context.Background()
	d := NewLRU(100, time.Minute)

	var firsts atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if seen, _ := d.Seen(ctx, "same"); !seen {
				firsts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), firsts.Load())
}

func TestRedis_Seen(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	d := NewRedis(client, time.Minute)

	seen, err := d.Seen(ctx, "discord:1:1")
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = d.Seen(ctx, "discord:1:1")
	require.NoError(t, err)
	assert.True(t, seen)

	assert.True(t, mr.Exists(KeyPrefix+"discord:1:1"))
	assert.Equal(t, time.Minute, mr.TTL(KeyPrefix+"discord:1:1"))
}

func TestRedis_WindowExpires(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	d := NewRedis(client, time.Minute)

	_, err := d.Seen(ctx, "k")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	seen, err := d.Seen(ctx, "k")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestRedis_ServerDown(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	d := NewRedis(client, time.Minute)
	mr.Close()

	_, err := d.Seen(ctx, "k")
	assert.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	_, err = NewRedisClient(context.Background(), "127.0.0.1:1")
	assert.Error(t, err)
}

type failingDeduper struct{}

func (failingDeduper) Seen(context.Context, string) (bool, error) {
	return false, errors.New("boom")
}

func TestFallback_AdmitsOnErrorWithoutSecondary(t *testing.T) {
	f := Fallback{Primary: failingDeduper{}}
	for i := 0; i < 2; i++ {
		seen, err := f.Seen(context.Background(), "k")
		require.NoError(t, err)
		assert.False(t, seen)
	}
}

func TestFallback_UsesSecondaryWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	f := Fallback{Primary: NewRedis(client, time.Minute), Secondary: NewLRU(16, time.Minute)}

	seen, err := f.Seen(ctx, "before")
	require.NoError(t, err)
	assert.False(t, seen)

	mr.Close()

	start := time.Now()
	seen, err = f.Seen(ctx, "during")
	require.NoError(t, err)
	assert.False(t, seen)
	assert.Less(t, time.Since(start), 2*time.Second)

	seen, err = f.Seen(ctx, "during")
	require.NoError(t, err)
	assert.True(t, seen, "redelivery during the outage is caught locally")

	seen, err = f.Seen(ctx, "before")
	require.NoError(t, err)
	assert.True(t, seen, "keys seen while redis was up are mirrored")
}

func TestFallback_PrimaryDecidesWhenHealthy(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	f := Fallback{Primary: NewRedis(client, time.Minute), Secondary: NewLRU(16, time.Minute)}

	_, err := f.Seen(ctx, "k")
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)

	seen, err := f.Seen(ctx, "k")
	require.NoError(t, err)
	assert.False(t, seen, "redis expiry wins over the local mirror")
}

func TestFallback_PassesThroughHealthyPrimary(t *testing.T) {
	lru := NewLRU(4, time.Minute)
	f := Fallback{Primary: lru}
	_, _ = f.Seen(context.Background(), "k")
	seen, _ := f.Seen(context.Background(), "k")
	assert.True(t, seen)
}
