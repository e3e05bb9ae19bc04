package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallel2(t *testing.T) {
	t.Run("returns both results", func(t *testing.T) {
		a, b, err := Parallel2(context.Background(),
			func(ctx context.Context) (int, error) { return 42, nil },
			func(ctx context.Context) (string, error) { return "ok", nil },
		)
		require.NoError(t, err)
		assert.Equal(t, 42, a)
		assert.Equal(t, "ok", b)
	})

	t.Run("first error wins and zeroes results", func(t *testing.T) {
		boom := errors.New("boom")

		a, b, err := Parallel2(context.Background(),
			func(ctx context.Context) (int, error) { return 42, nil },
			func(ctx context.Context) (string, error) { return "", boom },
		)
		require.ErrorIs(t, err, boom)
		assert.Zero(t, a)
		assert.Zero(t, b)
	})

	t.Run("error cancels the sibling context", func(t *testing.T) {
		boom := errors.New("boom")

		_, _, err := Parallel2(context.Background(),
			func(ctx context.Context) (int, error) {
				<-ctx.Done()
				return 0, ctx.Err()
			},
			func(ctx context.Context) (string, error) { return "", boom },
		)
		require.ErrorIs(t, err, boom)
	})
}

func TestParallelLimit(t *testing.T) {
	t.Run("preserves result order", func(t *testing.T) {
		fns := make([]func(context.Context) (int, error), 10)
		for i := range fns {
			fns[i] = func(ctx context.Context) (int, error) { return i, nil }
		}

		results, err := ParallelLimit(context.Background(), 3, fns...)
		require.NoError(t, err)

		for i, r := range results {
			assert.Equal(t, i, r)
		}
	})

	t.Run("respects the concurrency limit", func(t *testing.T) {
		var running, peak atomic.Int32

		fns := make([]func(context.Context) (int, error), 20)
		for i := range fns {
			fns[i] = func(ctx context.Context) (int, error) {
				cur := running.Add(1)
				defer running.Add(-1)

				for {
					old := peak.Load()
					if cur <= old || peak.CompareAndSwap(old, cur) {
						break
					}
				}

				return 0, nil
			}
		}

		_, err := ParallelLimit(context.Background(), 4, fns...)
		require.NoError(t, err)
		assert.LessOrEqual(t, peak.Load(), int32(4))
	})
}
