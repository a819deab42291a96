package bus

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"tomato-backend/application/ports"
)

// Query represents a read-only query
type Query interface {
	Validate() error
}

// QueryHandler handles a specific query type
type QueryHandler interface {
	Handle(ctx context.Context, query Query) (interface{}, error)
}

// QueryBus dispatches queries to their handlers
type QueryBus struct {
	handlers map[reflect.Type]QueryHandler
	mu       sync.RWMutex
}

// NewQueryBus creates a new query bus
func NewQueryBus() *QueryBus {
	return &QueryBus{
		handlers: make(map[reflect.Type]QueryHandler),
	}
}

// Register registers a handler for a query type
func (b *QueryBus) Register(queryType Query, handler QueryHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := reflect.TypeOf(queryType)
	if _, exists := b.handlers[t]; exists {
		return fmt.Errorf("handler already registered for query type %s", t.Name())
	}

	b.handlers[t] = handler
	return nil
}

// Ask dispatches a query to its handler and returns the result
func (b *QueryBus) Ask(ctx context.Context, query Query) (interface{}, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	handler, exists := b.handlers[reflect.TypeOf(query)]
	b.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("no handler registered for query type %T", query)
	}

	return handler.Handle(ctx, query)
}

// QueryHandlerFunc is an adapter to allow functions to be used as handlers
type QueryHandlerFunc func(ctx context.Context, query Query) (interface{}, error)

// Handle implements QueryHandler
func (f QueryHandlerFunc) Handle(ctx context.Context, query Query) (interface{}, error) {
	return f(ctx, query)
}

// CacheKeyer is implemented by queries whose results may be cached
type CacheKeyer interface {
	CacheKey() string
}

// CachingHandler wraps a query handler with read-through caching. Only
// queries implementing CacheKeyer are cached.
type CachingHandler struct {
	next  QueryHandler
	cache ports.Cache
}

// NewCachingHandler wraps a handler with the given cache
func NewCachingHandler(next QueryHandler, cache ports.Cache) *CachingHandler {
	return &CachingHandler{next: next, cache: cache}
}

// Handle implements QueryHandler
func (h *CachingHandler) Handle(ctx context.Context, query Query) (interface{}, error) {
	keyer, ok := query.(CacheKeyer)
	if !ok || h.cache == nil {
		return h.next.Handle(ctx, query)
	}

	key := keyer.CacheKey()
	if cached, hit := h.cache.Get(ctx, key); hit {
		return cached, nil
	}

	result, err := h.next.Handle(ctx, query)
	if err != nil {
		return nil, err
	}

	h.cache.Set(ctx, key, result)
	return result, nil
}
