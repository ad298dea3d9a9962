package kv

import (
	"testing"

	"atomkv/internal/engine"

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

func TestStringStoreRoundTrip(t *testing.T) {
	s := NewStringStore(newTestEngine(t))

	require.NoError(t, s.Set("greeting", "hello"))

	got := s.Get("greeting")
	require.NotNil(t, got)
	assert.Equal(t, "hello", *got)

	value, found, err := s.Lookup("greeting")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "hello", value)
}

func TestStringStoreAbsent(t *testing.T) {
	s := NewStringStore(newTestEngine(t))

	assert.Nil(t, s.Get("never-written"))
	assert.Equal(t, "fallback", s.GetOr("never-written", "fallback"))

	_, found, err := s.Lookup("never-written")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStringStoreRemove(t *testing.T) {
	s := NewStringStore(newTestEngine(t))

	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Remove("k"))
	assert.Nil(t, s.Get("k"))
}

func TestStringStoreClearAndKeys(t *testing.T) {
	e := newTestEngine(t)
	s := NewStringStore(e)
	n := NewNumberStore(e)

	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, n.Set("b", 2))

	assert.Equal(t, []string{"a", "b"}, s.AllKeys())
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("z"))

	// Clear wipes every domain, not just strings
	require.NoError(t, s.Clear())
	assert.Equal(t, []string{}, s.AllKeys())
	assert.Nil(t, n.Get("b"))
}

func TestNumberStoreVisitCountScenario(t *testing.T) {
	s := NewNumberStore(newTestEngine(t))

	require.NoError(t, s.Set("visitCount", 5))
	got := s.Get("visitCount")
	require.NotNil(t, got)
	assert.Equal(t, float64(5), *got)

	require.NoError(t, s.Remove("visitCount"))
	assert.Nil(t, s.Get("visitCount"))
}

func TestNumberStoreFractional(t *testing.T) {
	s := NewNumberStore(newTestEngine(t))

	require.NoError(t, s.Set("ratio", 0.625))
	assert.Equal(t, 0.625, s.GetOr("ratio", 0))
}

func TestBoolStoreRoundTrip(t *testing.T) {
	s := NewBoolStore(newTestEngine(t))

	require.NoError(t, s.Set("darkMode", true))
	got := s.Get("darkMode")
	require.NotNil(t, got)
	assert.True(t, *got)

	require.NoError(t, s.Set("darkMode", false))
	got = s.Get("darkMode")
	require.NotNil(t, got)
	assert.False(t, *got)
}

func TestCrossDomainCollision(t *testing.T) {
	// Same literal key through two facades lands on one row; the later
	// write wins and the earlier facade sees a decode fault.
	e := newTestEngine(t)
	strs := NewStringStore(e)
	nums := NewNumberStore(e)

	require.NoError(t, nums.Set("shared", 7))
	require.NoError(t, strs.Set("shared", "not a number"))

	_, found, err := nums.Lookup("shared")
	assert.False(t, found)
	assert.Error(t, err)

	// Defaulting surface collapses the fault into absence
	assert.Nil(t, nums.Get("shared"))
	assert.Equal(t, float64(-1), nums.GetOr("shared", -1))
}

func TestLookupFaultAfterClose(t *testing.T) {
	e, err := engine.Open(":memory:")
	require.NoError(t, err)
	s := NewStringStore(e)
	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, e.Close())

	_, found, err := s.Lookup("k")
	assert.False(t, found)
	assert.ErrorIs(t, err, engine.ErrClosed)

	// Defaulting helpers never propagate the fault
	assert.Nil(t, s.Get("k"))
	assert.Equal(t, "d", s.GetOr("k", "d"))
	assert.Equal(t, []string{}, s.AllKeys())
	assert.False(t, s.Has("k"))
	s.MustSet("k", "v2") // logs, does not panic
}
