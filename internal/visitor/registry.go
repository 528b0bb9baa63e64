package visitor

import (
	"container/list"
	"context"
	"sync"
)

// DefaultMaxEntries bounds a Registry when no size is given.
const DefaultMaxEntries = 10000

// Registry keeps one value per visitor, built on first use. When full, the
// least recently used entry is dropped; anything it persisted elsewhere
// survives and is reloaded by the next build.
type Registry[T any] struct {
	build func(ctx context.Context, visitorID string) T
	max   int

	mu      sync.Mutex
	order   *list.List // front is most recently used
	entries map[string]*list.Element
}

type entry[T any] struct {
	visitorID string
	value     T
}

// NewRegistry creates a registry. max <= 0 uses DefaultMaxEntries.
func NewRegistry[T any](max int, build func(ctx context.Context, visitorID string) T) *Registry[T] {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &Registry[T]{
		build:   build,
		max:     max,
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
}

// Get returns the visitor's value, building it on first use. build runs
// without the registry lock held; when two first requests race, the value
// inserted first wins and the other is discarded.
func (r *Registry[T]) Get(ctx context.Context, visitorID string) T {
	if v, ok := r.lookup(visitorID); ok {
		return v
	}

	built := r.build(ctx, visitorID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if el, ok := r.entries[visitorID]; ok {
		r.order.MoveToFront(el)
		return el.Value.(*entry[T]).value
	}
	for len(r.entries) >= r.max {
		r.evictOldest()
	}
	r.entries[visitorID] = r.order.PushFront(&entry[T]{visitorID: visitorID, value: built})
	return built
}

// Len returns the number of live entries.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry[T]) lookup(visitorID string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	el, ok := r.entries[visitorID]
	if !ok {
		var zero T
		return zero, false
	}
	r.order.MoveToFront(el)
	return el.Value.(*entry[T]).value, true
}

func (r *Registry[T]) evictOldest() {
	el := r.order.Back()
	if el == nil {
		return
	}
	r.order.Remove(el)
	delete(r.entries, el.Value.(*entry[T]).visitorID)
}
