package persist

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *RedisStore {
	// In-memory Redis server, no external dependency needed
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client)
}

func TestRedisStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	sut := setupTestRedis(t)

	data := []byte(`{"items":[{"id":"1","quantity":2}]}`)
	require.NoError(t, sut.Save(ctx, CartKey("abc"), data))

	got, err := sut.Load(ctx, CartKey("abc"))
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestRedisStore_LoadMissingKey(t *testing.T) {
	sut := setupTestRedis(t)

	_, err := sut.Load(context.Background(), CartKey("nobody"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	ctx := context.Background()
	sut := setupTestRedis(t)

	require.NoError(t, sut.Save(ctx, AuthKey("abc"), []byte("x")))
	require.NoError(t, sut.Delete(ctx, AuthKey("abc")))

	_, err := sut.Load(ctx, AuthKey("abc"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_KeysDoNotCollide(t *testing.T) {
	ctx := context.Background()
	sut := setupTestRedis(t)

	require.NoError(t, sut.Save(ctx, CartKey("abc"), []byte("cart")))
	require.NoError(t, sut.Save(ctx, AuthKey("abc"), []byte("auth")))

	cart, err := sut.Load(ctx, CartKey("abc"))
	require.NoError(t, err)
	auth, err := sut.Load(ctx, AuthKey("abc"))
	require.NoError(t, err)

	assert.Equal(t, []byte("cart"), cart)
	assert.Equal(t, []byte("auth"), auth)
}

func TestRedisStore_SlotsExpire(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	sut := NewRedisStore(client)

	require.NoError(t, sut.Save(ctx, CartKey("abc"), []byte("x")))

	ttl := mr.TTL(CartKey("abc"))
	assert.GreaterOrEqual(t, ttl, sut.baseTTL)
}
