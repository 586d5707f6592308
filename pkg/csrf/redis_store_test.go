package csrf_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/leadhub/pkg/csrf"
)

func TestRedisStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := csrf.NewRedisStore(client, "")
	m := csrf.NewManager(store, csrf.WithTTL(time.Minute))

	token, err := m.Issue(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, mr.Exists("csrf:s1"))
	assert.True(t, m.ValidateToken(ctx, "s1", token))

	mr.FastForward(2 * time.Minute)
	assert.False(t, m.ValidateToken(ctx, "s1", token))

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, csrf.ErrTokenNotFound)

	require.NoError(t, store.Set(ctx, "s2", "tok", time.Minute))
	require.NoError(t, store.Delete(ctx, "s2"))
	assert.False(t, mr.Exists("csrf:s2"))
}
