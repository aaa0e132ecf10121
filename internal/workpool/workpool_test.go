package workpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVisitsEveryIndex(t *testing.T) {
	out := make([]int, 100)
	err := Run(context.Background(), len(out), 4, func(_ context.Context, i int) error {
		out[i] = i * i
		return nil
	})
	require.NoError(t, err)
	for i, v := range out {
		assert.Equal(t, i*i, v)
	}
}

func TestRunReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int64
	err := Run(context.Background(), 50, 2, func(_ context.Context, i int) error {
		calls.Add(1)
		if i == 3 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.LessOrEqual(t, calls.Load(), int64(50))
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, 10, 2, func(context.Context, int) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunEmpty(t *testing.T) {
	require.NoError(t, Run(context.Background(), 0, 0, func(context.Context, int) error {
		t.Fatal("fn must not be called")
		return nil
	}))
}

func TestWorkersDefault(t *testing.T) {
	assert.Equal(t, 3, Workers(3))
	assert.Positive(t, Workers(0))
}
