package lowlight

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForEachRowBandCoversAllRows(t *testing.T) {
	for _, h := range []int{1, 2, 7, 64} {
		var mu sync.Mutex
		seen := make([]int, h)

		err := forEachRowBand(context.Background(), h, func(y0, y1 int) error {
			mu.Lock()
			defer mu.Unlock()
			for y := y0; y < y1; y++ {
				seen[y]++
			}
			return nil
		})
		require.NoError(t, err)

		for y, n := range seen {
			if n != 1 {
				t.Fatalf("h=%d: row %d visited %d times", h, y, n)
			}
		}
	}
}

func TestForEachRowBandHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := forEachRowBand(ctx, 64, func(y0, y1 int) error {
		t.Errorf("band [%d, %d) ran after cancellation", y0, y1)
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestForEachRowBandPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := forEachRowBand(context.Background(), 32, func(y0, y1 int) error {
		if y0 == 0 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}
