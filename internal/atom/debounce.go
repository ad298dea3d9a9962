package atom

import (
	"sync"
	"time"

	"atomkv/internal/logging"
)

// Debounced coalesces writes to a target cell with a trailing-edge policy:
// a write schedules a commit after the delay, and a later write within the
// window cancels the pending commit and reschedules. Only the last write in
// any window reaches the target, exactly once. The pending timer is owned
// by the cell itself, one per Debounced instance.
type Debounced[T any] struct {
	mu      sync.Mutex
	target  Cell[T]
	delay   time.Duration
	timer   *time.Timer
	pending T
	waiting bool
	gen     uint64
}

// NewDebounced wraps target with a trailing-edge debounce window of delay.
func NewDebounced[T any](target Cell[T], delay time.Duration) *Debounced[T] {
	return &Debounced[T]{target: target, delay: delay}
}

// Read returns the pending value when a commit is scheduled, otherwise the
// target's value. Readers of the debounced cell always see the latest write.
func (d *Debounced[T]) Read() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.waiting {
		return d.pending
	}
	return d.target.Read()
}

// Write records v as the pending value and (re)schedules the commit.
func (d *Debounced[T]) Write(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = v
	d.gen++
	gen := d.gen
	if d.waiting {
		// Drop the earlier pending write; a stale fire is rejected by gen
		d.timer.Stop()
	}
	d.waiting = true
	d.timer = time.AfterFunc(d.delay, func() { d.commit(gen) })
}

// Update applies fn to the debounced cell's current value and writes it.
// The read-modify-write runs under the cell mutex, so concurrent updates
// compose instead of clobbering each other.
func (d *Debounced[T]) Update(fn func(T) T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cur := d.pending
	if !d.waiting {
		cur = d.target.Read()
	}
	d.pending = fn(cur)
	d.gen++
	gen := d.gen
	if d.waiting {
		d.timer.Stop()
	}
	d.waiting = true
	d.timer = time.AfterFunc(d.delay, func() { d.commit(gen) })
}

// Subscribe passes through to the target: observers fire on commit, not on
// every debounced write.
func (d *Debounced[T]) Subscribe(fn func(T)) (cancel func()) {
	return d.target.Subscribe(fn)
}

// Flush commits a pending write immediately, if any.
func (d *Debounced[T]) Flush() {
	d.mu.Lock()
	if !d.waiting {
		d.mu.Unlock()
		return
	}
	d.timer.Stop()
	d.waiting = false
	d.gen++
	v := d.pending
	d.mu.Unlock()

	d.target.Write(v)
}

// Cancel drops a pending write without committing it.
func (d *Debounced[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.waiting {
		return
	}
	d.timer.Stop()
	d.waiting = false
	d.gen++
	logging.AtomDebug("Debounce cancelled pending write")
}

// commit runs on the timer goroutine when the window elapses untouched.
// A fire belonging to a superseded write carries a stale gen and is dropped.
func (d *Debounced[T]) commit(gen uint64) {
	d.mu.Lock()
	if !d.waiting || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.waiting = false
	v := d.pending
	d.mu.Unlock()

	d.target.Write(v)
}
