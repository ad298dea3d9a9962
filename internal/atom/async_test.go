package atom

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncFetchesOnceAndCaches(t *testing.T) {
	var calls atomic.Int64
	a := NewAsync(func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "fetched", nil
	})

	v, err := a.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fetched", v)

	v, err = a.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fetched", v)
	assert.Equal(t, int64(1), calls.Load())
}

func TestAsyncFaultIsCachedNotRetried(t *testing.T) {
	var calls atomic.Int64
	boom := errors.New("fetch failed")
	a := NewAsync(func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 0, boom
	})

	_, err := a.Read(context.Background())
	assert.ErrorIs(t, err, boom)

	// The fault is handed back without another fetch
	_, err = a.Read(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(1), calls.Load())
}

func TestAsyncRefreshRetriesAfterFault(t *testing.T) {
	var calls atomic.Int64
	a := NewAsync(func(ctx context.Context) (int, error) {
		if calls.Add(1) == 1 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})

	_, err := a.Read(context.Background())
	require.Error(t, err)

	v, err := a.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	// Refresh result is cached for plain reads
	v, err = a.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, int64(2), calls.Load())
}

func TestAsyncInvalidate(t *testing.T) {
	var calls atomic.Int64
	a := NewAsync(func(ctx context.Context) (int, error) {
		return int(calls.Add(1)), nil
	})

	v, err := a.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	a.Invalidate()
	v, err = a.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestAsyncConcurrentReadsShareOneFetch(t *testing.T) {
	var calls atomic.Int64
	gate := make(chan struct{})
	a := NewAsync(func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-gate
		return "shared", nil
	})

	const readers = 8
	var wg sync.WaitGroup
	results := make([]string, readers)
	errs := make([]error, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = a.Read(context.Background())
		}(i)
	}
	close(gate)
	wg.Wait()

	for i := 0; i < readers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", results[i])
	}
	assert.Equal(t, int64(1), calls.Load())
}
