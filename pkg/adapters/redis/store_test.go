package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/p2lu/turingtoy/pkg/adapters/redis"
	"github.com/p2lu/turingtoy/pkg/domain"
	"github.com/p2lu/turingtoy/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)

	store := redis.NewFromClient(client)
	ports.RunResultStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))

	require.NoError(t, store.Save(context.Background(), "abc", &domain.Result{Tape: "1"}))

	assert.True(t, mr.Exists("test:abc"))
	assert.False(t, mr.Exists(redis.DefaultPrefix+"abc"))

	members, err := mr.ZMembers("test:index")
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, members)
}

func TestRedisStore_TTL(t *testing.T) {
	mr, client := setup(t)
	ctx := context.Background()

	now := time.Unix(1_700_000_000, 0)
	store := redis.NewFromClient(client,
		redis.WithTTL(time.Minute),
		redis.WithClock(func() time.Time { return now }),
	)

	require.NoError(t, store.Save(ctx, "short", &domain.Result{Tape: "1"}))
	assert.Equal(t, time.Minute, mr.TTL(redis.DefaultPrefix+"short"))

	runs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"short"}, runs)

	mr.FastForward(2 * time.Minute)
	now = now.Add(2 * time.Minute)

	_, err = store.Load(ctx, "short")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)

	runs, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRedisStore_IndexIDIsReserved(t *testing.T) {
	_, client := setup(t)
	ctx := context.Background()
	store := redis.NewFromClient(client)

	require.NoError(t, store.Save(ctx, "run-1", &domain.Result{Tape: "1"}))

	err := store.Save(ctx, redis.IndexID, &domain.Result{Tape: "1"})
	assert.ErrorIs(t, err, redis.ErrReservedRunID)

	_, err = store.Load(ctx, redis.IndexID)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
	assert.NoError(t, store.Delete(ctx, redis.IndexID))

	// the index survives all of the above
	runs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-1"}, runs)
}
