package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name string `json:"name"`
}

func TestRedisJSON(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(RedisOptions{Addr: mr.Addr(), Timeout: time.Second})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	var got cachedThing
	ok, err := RedisGetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, RedisSetJSON(ctx, rdb, "k", cachedThing{Name: "x"}, time.Minute))
	ok, err = RedisGetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", got.Name)
	assert.Equal(t, time.Minute, mr.TTL("k"))
}

func TestRedisGetJSON_CorruptEntryIsEvicted(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(RedisOptions{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, mr.Set("k", "{not json"))

	var got cachedThing
	ok, err := RedisGetJSON(context.Background(), rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("k"))
}
