package atom

import "sort"

// derived is a read-only view computed from a source cell at read time.
type derived[S, T any] struct {
	src ReadOnly[S]
	fn  func(S) T
}

func (d *derived[S, T]) Read() T {
	return d.fn(d.src.Read())
}

func (d *derived[S, T]) Subscribe(fn func(T)) (cancel func()) {
	return d.src.Subscribe(func(s S) {
		fn(d.fn(s))
	})
}

// Derive returns a read-only cell whose value is fn applied to src's value
// at read time. Subscriptions pass through to the source.
func Derive[S, T any](src ReadOnly[S], fn func(S) T) ReadOnly[T] {
	return &derived[S, T]{src: src, fn: fn}
}

// Select returns a read-only view of the elements of src that satisfy pred.
func Select[E any](src ReadOnly[[]E], pred func(E) bool) ReadOnly[[]E] {
	return Derive(src, func(items []E) []E {
		out := make([]E, 0, len(items))
		for _, item := range items {
			if pred(item) {
				out = append(out, item)
			}
		}
		return out
	})
}

// Sorted returns a read-only view of src's elements ordered by less.
// The source slice is never mutated.
func Sorted[E any](src ReadOnly[[]E], less func(a, b E) bool) ReadOnly[[]E] {
	return Derive(src, func(items []E) []E {
		out := make([]E, len(items))
		copy(out, items)
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
		return out
	})
}
