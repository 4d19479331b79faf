package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_EmptyBeforeFirstRefresh(t *testing.T) {
	c := New("widgets", func(ctx context.Context) ([]int, error) {
		return []int{1, 2, 3}, nil
	})

	assert.Nil(t, c.Snapshot())
	assert.Equal(t, 0, c.Len())
}

func TestCache_RefreshReplacesSnapshot(t *testing.T) {
	rows := []int{1, 2, 3}
	c := New("widgets", func(ctx context.Context) ([]int, error) {
		out := make([]int, len(rows))
		copy(out, rows)
		return out, nil
	})

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, []int{1, 2, 3}, c.Snapshot())

	rows = []int{1, 2, 3, 4}
	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, []int{1, 2, 3, 4}, c.Snapshot())
	assert.Equal(t, 4, c.Len())
}

func TestCache_FailedRefreshRetainsPriorSnapshot(t *testing.T) {
	fail := false
	c := New("widgets", func(ctx context.Context) ([]int, error) {
		if fail {
			return nil, errors.New("store offline")
		}
		return []int{1, 2}, nil
	})

	require.NoError(t, c.Refresh(context.Background()))

	fail = true
	err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widgets")

	// The stale snapshot is still fully readable.
	assert.Equal(t, []int{1, 2}, c.Snapshot())
}

func TestCache_RefreshIgnoresCallerCancellation(t *testing.T) {
	var sawCancelled bool
	c := New("widgets", func(ctx context.Context) ([]int, error) {
		sawCancelled = ctx.Err() != nil
		return []int{1}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, c.Refresh(ctx))
	assert.False(t, sawCancelled, "loader should run with a detached context")
	assert.Equal(t, []int{1}, c.Snapshot())
}

func TestCache_ConcurrentReadersDuringRefresh(t *testing.T) {
	c := New("widgets", func(ctx context.Context) ([]int, error) {
		return []int{1, 2, 3}, nil
	})
	require.NoError(t, c.Refresh(context.Background()))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Readers must always see a complete snapshot, old or new.
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := c.Snapshot()
				if len(snap) != 3 {
					t.Errorf("torn snapshot: %v", snap)
					return
				}
			}
		}()
	}

	for i := 0; i < 100; i++ {
		require.NoError(t, c.Refresh(context.Background()))
	}
	close(stop)
	wg.Wait()
}

func TestCache_OverlappingRefreshesSerialize(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	var calls atomic.Int32
	c := New("widgets", func(ctx context.Context) ([]int, error) {
		n := calls.Add(1)
		started <- struct{}{}
		if n == 1 {
			// Hold the first load open so a second refresh overlaps it.
			<-release
			return []int{1}, nil
		}
		return []int{2}, nil
	})

	first := make(chan error, 1)
	go func() { first <- c.Refresh(context.Background()) }()
	<-started

	second := make(chan error, 1)
	go func() { second <- c.Refresh(context.Background()) }()

	// The second load must not start while the first refresh is in flight;
	// otherwise the first's older rows could land after the second's.
	select {
	case <-started:
		t.Fatal("second load started before the first refresh finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-first)
	require.NoError(t, <-second)

	// The refresh that finished last is the one that sticks.
	assert.Equal(t, []int{2}, c.Snapshot())
}

func TestFind(t *testing.T) {
	c := New("widgets", func(ctx context.Context) ([]int, error) {
		return []int{10, 20, 30}, nil
	})
	require.NoError(t, c.Refresh(context.Background()))

	v, ok := Find(c, func(n int) bool { return n > 15 })
	assert.True(t, ok)
	assert.Equal(t, 20, v)

	_, ok = Find(c, func(n int) bool { return n > 100 })
	assert.False(t, ok)
}

func TestExists(t *testing.T) {
	c := New("widgets", func(ctx context.Context) ([]int, error) {
		return []int{1, 2}, nil
	})
	require.NoError(t, c.Refresh(context.Background()))

	assert.True(t, Exists(c, func(n int) bool { return n == 2 }))
	assert.False(t, Exists(c, func(n int) bool { return n == 3 }))
}

func TestSelect(t *testing.T) {
	c := New("widgets", func(ctx context.Context) ([]int, error) {
		return []int{1, 2, 3, 4, 5}, nil
	})
	require.NoError(t, c.Refresh(context.Background()))

	odd := Select(c, func(n int) bool { return n%2 == 1 })
	assert.Equal(t, []int{1, 3, 5}, odd)

	none := Select(c, func(n int) bool { return n > 10 })
	assert.Nil(t, none)
}
