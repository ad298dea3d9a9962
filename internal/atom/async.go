package atom

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Async is a fetch-backed read-only cell. The first Read triggers the fetch
// and caches the result; concurrent first reads share one in-flight fetch.
// A fetch fault is cached and handed back to every subsequent reader until
// Refresh or Invalidate clears it; faults are not retried automatically.
type Async[T any] struct {
	mu      sync.Mutex
	fetch   func(context.Context) (T, error)
	group   singleflight.Group
	value   T
	err     error
	settled bool
}

// NewAsync returns a cell backed by fetch.
func NewAsync[T any](fetch func(context.Context) (T, error)) *Async[T] {
	return &Async[T]{fetch: fetch}
}

// Read returns the fetched value, fetching on first use.
func (a *Async[T]) Read(ctx context.Context) (T, error) {
	a.mu.Lock()
	if a.settled {
		v, err := a.value, a.err
		a.mu.Unlock()
		return v, err
	}
	a.mu.Unlock()

	return a.resolve(ctx)
}

// Refresh discards any cached result and fetches again.
func (a *Async[T]) Refresh(ctx context.Context) (T, error) {
	a.Invalidate()
	return a.resolve(ctx)
}

// Invalidate discards the cached result so the next Read fetches.
func (a *Async[T]) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	var zero T
	a.value = zero
	a.err = nil
	a.settled = false
}

func (a *Async[T]) resolve(ctx context.Context) (T, error) {
	// Collapse concurrent resolutions into one fetch
	v, err, _ := a.group.Do("fetch", func() (interface{}, error) {
		a.mu.Lock()
		if a.settled {
			value, err := a.value, a.err
			a.mu.Unlock()
			return value, err
		}
		a.mu.Unlock()

		value, err := a.fetch(ctx)

		a.mu.Lock()
		a.value = value
		a.err = err
		a.settled = true
		a.mu.Unlock()
		return value, err
	})
	if err != nil {
		var zero T
		if v != nil {
			if typed, ok := v.(T); ok {
				return typed, err
			}
		}
		return zero, err
	}
	return v.(T), nil
}
