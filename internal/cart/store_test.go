package cart

import (
	"context"
	"fmt"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demo-018/indiveg-hub/pkg/logger"
	"github.com/demo-018/indiveg-hub/pkg/redis"
)

type fakeRedisStore struct {
	data map[string]string
}

func newFakeRedisStore() *fakeRedisStore {
	return &fakeRedisStore{data: map[string]string{}}
}

func (f *fakeRedisStore) Ping(context.Context) *goredis.StatusCmd {
	return goredis.NewStatusResult("PONG", nil)
}

func (f *fakeRedisStore) Get(_ context.Context, key string) *goredis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeRedisStore) Set(_ context.Context, key string, value any, _ time.Duration) *goredis.StatusCmd {
	f.data[key] = fmt.Sprint(value)
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedisStore) SetNX(_ context.Context, key string, value any, _ time.Duration) *goredis.BoolCmd {
	if _, exists := f.data[key]; exists {
		return goredis.NewBoolResult(false, nil)
	}
	f.data[key] = fmt.Sprint(value)
	return goredis.NewBoolResult(true, nil)
}

func (f *fakeRedisStore) Incr(_ context.Context, _ string) *goredis.IntCmd {
	return goredis.NewIntResult(0, nil)
}

func (f *fakeRedisStore) Expire(_ context.Context, _ string, _ time.Duration) *goredis.BoolCmd {
	return goredis.NewBoolResult(true, nil)
}

func (f *fakeRedisStore) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	for _, key := range keys {
		delete(f.data, key)
	}
	return goredis.NewIntResult(int64(len(keys)), nil)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func newTestStore(t *testing.T) (*Store, *fakeRedisStore) {
	t.Helper()
	fake := newFakeRedisStore()
	log := logger.New(logger.Options{ServiceName: "test", Output: discardWriter{}})
	store, err := NewStore(redis.NewFromClient(fake), log)
	require.NoError(t, err)
	return store, fake
}

func TestLoadMissingCartIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	entries, err := store.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	saved := []Entry{
		{ProductID: "spinach", Quantity: decimal.NewFromFloat(1.5), AddedAt: time.Now().UTC().Truncate(time.Second)},
		{ProductID: "tomato", Quantity: decimal.NewFromInt(2), AddedAt: time.Now().UTC().Truncate(time.Second)},
	}
	require.NoError(t, store.Save(ctx, "u1", saved))

	loaded, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "spinach", loaded[0].ProductID)
	assert.True(t, loaded[0].Quantity.Equal(decimal.NewFromFloat(1.5)))
	assert.True(t, loaded[1].Quantity.Equal(decimal.NewFromInt(2)))
}

func TestCorruptSnapshotYieldsEmptyCart(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()

	fake.data[redis.CartKey("u1")] = `{"this is": not a cart`

	entries, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, entries)

	// The user can keep shopping over the discarded snapshot.
	require.NoError(t, store.Save(ctx, "u1", []Entry{{ProductID: "spinach", Quantity: decimal.NewFromInt(1)}}))
	entries, err = store.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "spinach", entries[0].ProductID)
}

func TestSaveEmptyClearsKey(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "u1", []Entry{{ProductID: "spinach", Quantity: decimal.NewFromInt(1)}}))
	require.NoError(t, store.Save(ctx, "u1", nil))

	assert.NotContains(t, fake.data, redis.CartKey("u1"))
}
