package pool_test

import (
	"context"
	"slices"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mirror/internal/engine/pool"
)

func TestRun_ProcessesEveryItem(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}

	var got []int
	for r := range pool.Run(t.Context(), items, 3, func(_ context.Context, n int) int { return n * n }) {
		got = append(got, r)
	}

	slices.Sort(got)
	assert.Equal(t, []int{1, 4, 9, 16, 25, 36, 49, 64}, got)
}

func TestRun_Empty(t *testing.T) {
	called := false
	for range pool.Run(t.Context(), []int(nil), 4, func(context.Context, int) int {
		called = true
		return 0
	}) {
		t.Fatal("no results expected")
	}
	assert.False(t, called)
}

func TestRun_BoundsConcurrency(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var inFlight, peak atomic.Int32
		items := make([]int, 20)

		count := 0
		for range pool.Run(t.Context(), items, 4, func(context.Context, int) int {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
			return 0
		}) {
			count++
		}

		assert.Equal(t, 20, count)
		assert.Equal(t, int32(4), peak.Load())
	})
}

func TestRun_CompletionOrder(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		delays := []time.Duration{300 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond}

		var order []int
		for i := range pool.Run(t.Context(), []int{0, 1, 2}, 3, func(_ context.Context, i int) int {
			time.Sleep(delays[i])
			return i
		}) {
			order = append(order, i)
		}

		assert.Equal(t, []int{1, 2, 0}, order)
	})
}

func TestRun_ZeroWorkersRunsSequentially(t *testing.T) {
	var inFlight, peak atomic.Int32
	for range pool.Run(t.Context(), []int{1, 2, 3}, 0, func(context.Context, int) int {
		n := inFlight.Add(1)
		if n > peak.Load() {
			peak.Store(n)
		}
		inFlight.Add(-1)
		return 0
	}) {
	}
	assert.Equal(t, int32(1), peak.Load())
}

func TestRun_CancelStopsDispatch(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	var calls atomic.Int32
	results := 0
	for range pool.Run(ctx, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1, func(_ context.Context, i int) int {
		calls.Add(1)
		if i == 2 {
			cancel()
		}
		return i
	}) {
		results++
	}

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 3, results)
}

func TestRun_EarlyBreak(t *testing.T) {
	var calls atomic.Int32
	seq := pool.Run(t.Context(), make([]int, 100), 2, func(ctx context.Context, _ int) error {
		calls.Add(1)
		return ctx.Err()
	})

	for range seq {
		break
	}

	require.Less(t, calls.Load(), int32(100))
}
