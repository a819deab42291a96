package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testQuery struct {
	OwnerID     string
	validateErr error
}

func (q testQuery) Validate() error { return q.validateErr }

type cachedQuery struct {
	Key string
}

func (q cachedQuery) Validate() error  { return nil }
func (q cachedQuery) CacheKey() string { return q.Key }

type mapCache struct {
	items map[string]interface{}
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string]interface{})}
}

func (c *mapCache) Get(ctx context.Context, key string) (interface{}, bool) {
	v, ok := c.items[key]
	return v, ok
}

func (c *mapCache) Set(ctx context.Context, key string, value interface{}) {
	c.items[key] = value
}

func (c *mapCache) Delete(ctx context.Context, key string) {
	delete(c.items, key)
}

func TestQueryBus_AskDispatchesToHandler(t *testing.T) {
	b := NewQueryBus()

	err := b.Register(testQuery{}, QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		return query.(testQuery).OwnerID, nil
	}))
	require.NoError(t, err)

	result, err := b.Ask(context.Background(), testQuery{OwnerID: "user1"})

	assert.NoError(t, err)
	assert.Equal(t, "user1", result)
}

func TestQueryBus_AskValidatesFirst(t *testing.T) {
	b := NewQueryBus()

	called := false
	_ = b.Register(testQuery{}, QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		called = true
		return nil, nil
	}))

	_, err := b.Ask(context.Background(), testQuery{validateErr: errors.New("missing owner")})

	assert.Error(t, err)
	assert.False(t, called)
}

func TestQueryBus_AskUnregisteredQuery(t *testing.T) {
	b := NewQueryBus()

	_, err := b.Ask(context.Background(), testQuery{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no handler registered")
}

func TestCachingHandler_ServesFromCacheOnSecondAsk(t *testing.T) {
	calls := 0
	inner := QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		calls++
		return "computed", nil
	})
	handler := NewCachingHandler(inner, newMapCache())

	first, err := handler.Handle(context.Background(), cachedQuery{Key: "stats:user1"})
	require.NoError(t, err)
	second, err := handler.Handle(context.Background(), cachedQuery{Key: "stats:user1"})
	require.NoError(t, err)

	assert.Equal(t, "computed", first)
	assert.Equal(t, "computed", second)
	assert.Equal(t, 1, calls)
}

func TestCachingHandler_SeparateKeysDoNotShare(t *testing.T) {
	calls := 0
	inner := QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		calls++
		return calls, nil
	})
	handler := NewCachingHandler(inner, newMapCache())

	first, _ := handler.Handle(context.Background(), cachedQuery{Key: "stats:user1"})
	second, _ := handler.Handle(context.Background(), cachedQuery{Key: "stats:user2"})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestCachingHandler_ErrorsAreNotCached(t *testing.T) {
	calls := 0
	inner := QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient")
		}
		return "ok", nil
	})
	handler := NewCachingHandler(inner, newMapCache())

	_, err := handler.Handle(context.Background(), cachedQuery{Key: "stats:user1"})
	assert.Error(t, err)

	result, err := handler.Handle(context.Background(), cachedQuery{Key: "stats:user1"})
	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
}

func TestCachingHandler_NonCacheableQueryPassesThrough(t *testing.T) {
	calls := 0
	inner := QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		calls++
		return "fresh", nil
	})
	handler := NewCachingHandler(inner, newMapCache())

	_, _ = handler.Handle(context.Background(), testQuery{OwnerID: "user1"})
	_, _ = handler.Handle(context.Background(), testQuery{OwnerID: "user1"})

	assert.Equal(t, 2, calls)
}
