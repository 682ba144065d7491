package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real server when POS_TEST_REDIS_ADDR is set.
func newTestClient(t *testing.T) *Client {
	t.Helper()
	addr := os.Getenv("POS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("POS_TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewClient(rdb, "test:"+uuid.NewString()+":")
}

func TestGetSetDelete(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, found, err := c.Get(ctx, "pos_orderNumber")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "pos_orderNumber", "12"))
	v, found, err := c.Get(ctx, "pos_orderNumber")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "12", v)

	require.NoError(t, c.Delete(ctx, "pos_orderNumber"))
	_, found, err = c.Get(ctx, "pos_orderNumber")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestIncrWindow(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	n, err := c.IncrWindow(ctx, "rl", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = c.IncrWindow(ctx, "rl", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, c.Delete(ctx, "rl"))
}
