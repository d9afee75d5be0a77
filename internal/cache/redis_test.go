package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisClient(&Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestGetSet_MissReturnsNil(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	val, err := c.Get(ctx, "products:list:c1:x")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, c.Set(ctx, "products:list:c1:x", []byte(`[]`), time.Minute))
	val, err = c.Get(ctx, "products:list:c1:x")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), val)
}

func TestDeletePattern_OnlyMatchingKeys(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "products:list:c1:a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "products:list:c1:b", []byte("2"), 0))
	require.NoError(t, c.Set(ctx, "products:list:c2:a", []byte("3"), 0))

	require.NoError(t, c.DeletePattern(ctx, "products:list:c1:*"))

	assert.False(t, mr.Exists("products:list:c1:a"))
	assert.False(t, mr.Exists("products:list:c1:b"))
	assert.True(t, mr.Exists("products:list:c2:a"))
}

func TestLock_SingleOwner(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	ok, err := c.AcquireLock(ctx, "lock:product:P1", "owner-a", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.AcquireLock(ctx, "lock:product:P1", "owner-b", 5*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	// a foreign owner cannot release it
	require.NoError(t, c.ReleaseLock(ctx, "lock:product:P1", "owner-b"))
	assert.True(t, mr.Exists("lock:product:P1"))

	require.NoError(t, c.ReleaseLock(ctx, "lock:product:P1", "owner-a"))
	assert.False(t, mr.Exists("lock:product:P1"))
}
