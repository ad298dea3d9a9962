package atom

import (
	"errors"
	"sync"
	"testing"

	"atomkv/internal/engine"
	"atomkv/internal/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func TestPersistedSeedsFromStorage(t *testing.T) {
	e := newTestEngine(t)
	store := kv.NewStringStore(e)
	require.NoError(t, store.Set("username", "stored-name"))

	// The stored value wins over the initial value at first read
	a := NewPersisted[string](store, "username", "default-name")
	assert.Equal(t, "stored-name", a.Read())
}

func TestPersistedFallsBackToInitial(t *testing.T) {
	store := kv.NewStringStore(newTestEngine(t))

	a := NewPersisted[string](store, "username", "default-name")
	assert.Equal(t, "default-name", a.Read())
}

func TestPersistedWriteMirrorsToStorage(t *testing.T) {
	e := newTestEngine(t)
	store := kv.NewNumberStore(e)

	a := NewPersisted[float64](store, "visitCount", 0)
	a.Write(5)

	assert.Equal(t, float64(5), a.Read())
	got := store.Get("visitCount")
	require.NotNil(t, got)
	assert.Equal(t, float64(5), *got)
}

func TestPersistedRemoveResetsToInitial(t *testing.T) {
	e := newTestEngine(t)
	store := kv.NewNumberStore(e)

	a := NewPersisted[float64](store, "visitCount", 0)
	a.Write(5)
	a.Remove()

	assert.Equal(t, float64(0), a.Read())
	assert.Nil(t, store.Get("visitCount"))
}

func TestPersistedWriteZeroIsNotRemoval(t *testing.T) {
	e := newTestEngine(t)
	store := kv.NewNumberStore(e)

	a := NewPersisted[float64](store, "visitCount", 7)
	a.Write(0)

	// The row must exist and hold zero; a fresh atom seeds from it
	got := store.Get("visitCount")
	require.NotNil(t, got)
	assert.Equal(t, float64(0), *got)

	b := NewPersisted[float64](store, "visitCount", 7)
	assert.Equal(t, float64(0), b.Read())
}

func TestPersistedSubscribe(t *testing.T) {
	store := kv.NewStringStore(newTestEngine(t))
	a := NewPersisted[string](store, "k", "")

	var mu sync.Mutex
	var seen []string
	cancel := a.Subscribe(func(v string) {
		mu.Lock()
		seen = append(seen, v)
		mu.Unlock()
	})

	a.Write("one")
	a.Write("two")
	cancel()
	a.Write("three")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"one", "two"}, seen)
}

func TestPersistedUpdate(t *testing.T) {
	store := kv.NewNumberStore(newTestEngine(t))
	a := NewPersisted[float64](store, "count", 10)

	a.Update(func(v float64) float64 { return v * 2 })
	assert.Equal(t, float64(20), a.Read())

	got := store.Get("count")
	require.NotNil(t, got)
	assert.Equal(t, float64(20), *got)
}

// faultStore fails every storage operation; the atom must keep serving its
// in-memory value regardless.
type faultStore struct{}

var errFault = errors.New("disk on fire")

func (faultStore) Lookup(string) (string, bool, error) { return "", false, errFault }
func (faultStore) Get(string) *string                  { return nil }
func (faultStore) GetOr(_ string, fb string) string    { return fb }
func (faultStore) Set(string, string) error            { return errFault }
func (faultStore) MustSet(string, string)              {}
func (faultStore) Remove(string) error                 { return errFault }

func TestPersistedDivergesOnStorageFault(t *testing.T) {
	a := NewPersisted[string](faultStore{}, "k", "initial")

	// Storage write fails silently; readers still see the new value
	a.Write("in-memory-only")
	assert.Equal(t, "in-memory-only", a.Read())

	// Remove fault is logged, cell still resets
	a.Remove()
	assert.Equal(t, "initial", a.Read())
}

func TestMemoryCell(t *testing.T) {
	m := NewMemory(3)
	assert.Equal(t, 3, m.Read())

	m.Write(4)
	assert.Equal(t, 4, m.Read())

	var got int
	cancel := m.Subscribe(func(v int) { got = v })
	m.Update(func(v int) int { return v + 1 })
	assert.Equal(t, 5, m.Read())
	assert.Equal(t, 5, got)
	cancel()
}

func TestToggleAndCounter(t *testing.T) {
	e := newTestEngine(t)
	flags := kv.NewBoolStore(e)
	nums := kv.NewNumberStore(e)

	dark := NewPersisted[bool](flags, "darkMode", false)
	assert.True(t, Toggle(dark))
	assert.False(t, Toggle(dark))
	got := flags.Get("darkMode")
	require.NotNil(t, got)
	assert.False(t, *got)

	visits := NewPersisted[float64](nums, "visits", 0)
	assert.Equal(t, float64(1), Increment(visits))
	assert.Equal(t, float64(2), Increment(visits))
	assert.Equal(t, float64(1), Decrement(visits))
	assert.Equal(t, float64(11), Add(visits, 10))
	n := nums.Get("visits")
	require.NotNil(t, n)
	assert.Equal(t, float64(11), *n)
}
