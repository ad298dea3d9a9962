// Package atom implements persisted reactive state cells over the typed
// storage facades. A Persisted cell seeds from storage at first read,
// caches in memory, and mirrors every write back to storage. The in-memory
// value is authoritative for readers: a storage fault during mirroring is
// logged and the cache keeps the new value, so the two can diverge after a
// fault.
package atom

import (
	"sync"

	"atomkv/internal/kv"
	"atomkv/internal/logging"
)

// Cell is the minimal reactive-container contract: synchronous read,
// write, functional update, and change subscription.
type Cell[T any] interface {
	Read() T
	Write(v T)
	Update(fn func(T) T)
	Subscribe(fn func(T)) (cancel func())
}

// ReadOnly is the read side of a cell, produced by the pure combinators.
type ReadOnly[T any] interface {
	Read() T
	Subscribe(fn func(T)) (cancel func())
}

// Persisted is a reactive cell mirrored to a storage facade.
type Persisted[T any] struct {
	mu      sync.Mutex
	store   kv.Store[T]
	key     string
	initial T
	value   T
	seeded  bool
	subs    map[int]func(T)
	nextSub int
}

// NewPersisted wraps store's row at key as a reactive cell. The stored
// value, when present, wins over initial at first read.
func NewPersisted[T any](store kv.Store[T], key string, initial T) *Persisted[T] {
	return &Persisted[T]{
		store:   store,
		key:     key,
		initial: initial,
		subs:    make(map[int]func(T)),
	}
}

// Read returns the current value, seeding from storage on the first call.
// Absence and read faults both fall back to the initial value.
func (p *Persisted[T]) Read() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.seeded {
		p.value = p.store.GetOr(p.key, p.initial)
		p.seeded = true
		logging.AtomDebug("Seeded atom key=%s", p.key)
	}
	return p.value
}

// Write sets the value and mirrors it to storage. Readers see the new value
// immediately; a storage fault is logged and does not roll it back.
func (p *Persisted[T]) Write(v T) {
	p.mu.Lock()
	p.value = v
	p.seeded = true
	subs := p.snapshotSubs()
	p.mu.Unlock()

	p.store.MustSet(p.key, v)
	for _, fn := range subs {
		fn(v)
	}
}

// Update applies fn to the current value and writes the result.
func (p *Persisted[T]) Update(fn func(T) T) {
	p.mu.Lock()
	if !p.seeded {
		p.value = p.store.GetOr(p.key, p.initial)
		p.seeded = true
	}
	v := fn(p.value)
	p.value = v
	subs := p.snapshotSubs()
	p.mu.Unlock()

	p.store.MustSet(p.key, v)
	for _, s := range subs {
		s(v)
	}
}

// Remove deletes the storage row and resets the cell to its initial value.
// This is the only removal path; writing a zero value is a normal write.
func (p *Persisted[T]) Remove() {
	p.mu.Lock()
	p.value = p.initial
	p.seeded = true
	subs := p.snapshotSubs()
	p.mu.Unlock()

	if err := p.store.Remove(p.key); err != nil {
		logging.AtomError("Remove key=%s: %v", p.key, err)
	}
	for _, fn := range subs {
		fn(p.initial)
	}
}

// Subscribe registers fn to run after every write. The returned cancel
// unregisters it.
func (p *Persisted[T]) Subscribe(fn func(T)) (cancel func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

// snapshotSubs copies the subscriber list; callers invoke outside the lock.
func (p *Persisted[T]) snapshotSubs() []func(T) {
	out := make([]func(T), 0, len(p.subs))
	for _, fn := range p.subs {
		out = append(out, fn)
	}
	return out
}

// Memory is a plain in-memory cell with no storage mirroring. Combinator
// targets and tests use it where persistence is not wanted.
type Memory[T any] struct {
	mu      sync.Mutex
	value   T
	subs    map[int]func(T)
	nextSub int
}

// NewMemory returns an in-memory cell holding initial.
func NewMemory[T any](initial T) *Memory[T] {
	return &Memory[T]{value: initial, subs: make(map[int]func(T))}
}

func (m *Memory[T]) Read() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

func (m *Memory[T]) Write(v T) {
	m.mu.Lock()
	m.value = v
	subs := make([]func(T), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

func (m *Memory[T]) Update(fn func(T) T) {
	m.mu.Lock()
	v := fn(m.value)
	m.value = v
	subs := make([]func(T), 0, len(m.subs))
	for _, s := range m.subs {
		subs = append(subs, s)
	}
	m.mu.Unlock()

	for _, s := range subs {
		s(v)
	}
}

func (m *Memory[T]) Subscribe(fn func(T)) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}
