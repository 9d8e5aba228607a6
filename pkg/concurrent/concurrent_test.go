package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForEachSequentialKeepsOrder(t *testing.T) {
	var got []int
	err := ForEach(context.Background(), []int{1, 2, 3, 4}, 1, func(_ context.Context, v int) error {
		got = append(got, v)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, got)
}

func TestForEachParallelVisitsAll(t *testing.T) {
	items := make([]int, 200)
	for i := range items {
		items[i] = i
	}
	var sum atomic.Int64
	var inFlight, peak atomic.Int32

	err := ForEach(context.Background(), items, 4, func(_ context.Context, v int) error {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		sum.Add(int64(v))
		inFlight.Add(-1)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(199*200/2), sum.Load())
	assert.LessOrEqual(t, peak.Load(), int32(4))
}

func TestForEachReturnsError(t *testing.T) {
	boom := errors.New("boom")
	for _, workers := range []int{1, 3} {
		err := ForEach(context.Background(), []int{1, 2, 3}, workers, func(_ context.Context, v int) error {
			if v == 2 {
				return boom
			}
			return nil
		})
		assert.ErrorIs(t, err, boom)
	}
}

func TestForEachCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := ForEach(ctx, []int{1}, 1, func(context.Context, int) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
