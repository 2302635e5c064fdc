package kv

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRedisAddr = "localhost:6379"

// exercise runs the contract every Store implementation must meet.
func exercise(t *testing.T, s Store, key string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "missing key must not be found")

	require.NoError(t, s.Set(ctx, key, []byte(`[{"quantity":1}]`)))
	v, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"quantity":1}]`, string(v))

	require.NoError(t, s.Set(ctx, key, []byte(`[]`)))
	v, ok, err = s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[]`, string(v))

	require.NoError(t, s.Delete(ctx, key))
	_, ok, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Delete(ctx, key), "deleting a missing key is a no-op")
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	exercise(t, s, "glowmart-cart:test")
	assert.Equal(t, 0, s.Len())
}

func TestMemStore_CopiesValues(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	buf := []byte(`[1]`)
	require.NoError(t, s.Set(ctx, "k", buf))
	buf[1] = '2'

	v, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(v))
}

func TestRedisStore(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	s := NewRedisStore(client, "glowmart-test:", time.Minute)
	exercise(t, s, "cart:"+uuid.NewString())
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	s := NewPostgresStore(pool)
	require.NoError(t, s.Migrate(ctx))
	exercise(t, s, "cart:"+uuid.NewString())
}
