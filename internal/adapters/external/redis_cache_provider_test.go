package external

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"climaterisk.app/internal/config"
	"climaterisk.app/pkg/errors"
)

// setupMockRedis creates a mock Redis server for testing
func setupMockRedis(t *testing.T) (*miniredis.Miniredis, *config.RedisConfig) {
	t.Helper()

	mockRedis := miniredis.RunT(t)
	redisConfig := &config.RedisConfig{
		Addr:         mockRedis.Addr(),
		DB:           0,
		DialTimeout:  5,
		ReadTimeout:  3,
		WriteTimeout: 3,
	}

	return mockRedis, redisConfig
}

func TestRedisCacheProviderAdapter_New(t *testing.T) {
	t.Run("NilConfig", func(t *testing.T) {
		adapter, err := NewRedisCacheProviderAdapter(nil, nil)
		assert.Nil(t, adapter)
		assert.True(t, errors.IsConfigurationError(err))
	})

	t.Run("ValidConfig", func(t *testing.T) {
		_, cfg := setupMockRedis(t)
		adapter, err := NewRedisCacheProviderAdapter(cfg, nil)
		require.NoError(t, err)
		assert.NoError(t, adapter.Ping(context.Background()))
		assert.NoError(t, adapter.Close())
	})

	t.Run("InvalidAddress", func(t *testing.T) {
		adapter, err := NewRedisCacheProviderAdapter(&config.RedisConfig{
			Addr: "invalid:address:port", DialTimeout: 1, ReadTimeout: 1, WriteTimeout: 1,
		}, nil)
		assert.Nil(t, adapter)
		assert.True(t, errors.IsExternalAPIError(err))
	})
}

func TestRedisCacheProviderAdapter_Operations(t *testing.T) {
	mockRedis, cfg := setupMockRedis(t)
	observer := &recordingObserver{}
	adapter, err := NewRedisCacheProviderAdapter(cfg, observer)
	require.NoError(t, err)
	defer func() { _ = adapter.Close() }()
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, adapter.Set(ctx, "climate:1.00:2.00:1995-2025", []byte(`{"source":"NASA POWER"}`), time.Hour))

		raw, err := mockRedis.Get("climaterisk:climate:1.00:2.00:1995-2025")
		require.NoError(t, err)
		assert.Equal(t, `{"source":"NASA POWER"}`, raw)

		value, err := adapter.Get(ctx, "climate:1.00:2.00:1995-2025")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"source":"NASA POWER"}`), value)
	})

	t.Run("Miss", func(t *testing.T) {
		_, err := adapter.Get(ctx, "absent")
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("TTL", func(t *testing.T) {
		require.NoError(t, adapter.Set(ctx, "short", []byte("v"), time.Minute))
		mockRedis.FastForward(2 * time.Minute)

		exists, err := adapter.Exists(ctx, "short")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, adapter.Set(ctx, "gone", []byte("v"), time.Minute))
		require.NoError(t, adapter.Delete(ctx, "gone"))
		assert.False(t, mockRedis.Exists("climaterisk:gone"))
	})

	t.Run("ClearKeepsForeignKeys", func(t *testing.T) {
		require.NoError(t, mockRedis.Set("session:42", "foreign"))
		require.NoError(t, adapter.Set(ctx, "a", []byte("1"), time.Minute))
		require.NoError(t, adapter.Set(ctx, "b", []byte("2"), time.Minute))

		require.NoError(t, adapter.Clear(ctx))

		assert.False(t, mockRedis.Exists("climaterisk:a"))
		assert.False(t, mockRedis.Exists("climaterisk:b"))
		assert.True(t, mockRedis.Exists("session:42"))
	})

	t.Run("Stats", func(t *testing.T) {
		stats := adapter.GetStats()
		assert.Equal(t, int64(1), stats.Hits)
		assert.Equal(t, int64(1), stats.Misses)
		assert.Contains(t, observer.results(), "get:hit")
		assert.Contains(t, observer.results(), "get:miss")
	})
}

func TestRedisCacheProviderAdapter_ServerDown(t *testing.T) {
	mockRedis, cfg := setupMockRedis(t)
	observer := &recordingObserver{}
	adapter, err := NewRedisCacheProviderAdapter(cfg, observer)
	require.NoError(t, err)
	defer func() { _ = adapter.Close() }()

	mockRedis.Close()

	_, err = adapter.Get(context.Background(), "key")
	assert.True(t, errors.IsExternalAPIError(err))
	assert.True(t, errors.IsExternalAPIError(adapter.Ping(context.Background())))
	assert.Equal(t, []string{"get:error"}, observer.results())
}

func TestRedisCacheProviderAdapter_ValidationErrors(t *testing.T) {
	_, cfg := setupMockRedis(t)
	adapter, err := NewRedisCacheProviderAdapter(cfg, nil)
	require.NoError(t, err)
	defer func() { _ = adapter.Close() }()
	ctx := context.Background()

	_, err = adapter.Get(ctx, "")
	assert.True(t, errors.IsValidationError(err))
	assert.True(t, errors.IsValidationError(adapter.Set(ctx, "", []byte("v"), time.Minute)))
	assert.True(t, errors.IsValidationError(adapter.Set(ctx, "k", nil, time.Minute)))
	assert.True(t, errors.IsValidationError(adapter.Set(ctx, "k", []byte("v"), -time.Second)))
	assert.True(t, errors.IsValidationError(adapter.Delete(ctx, "")))
	_, err = adapter.Exists(ctx, "")
	assert.True(t, errors.IsValidationError(err))
}
