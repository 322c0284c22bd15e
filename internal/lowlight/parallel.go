package lowlight

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// forEachRowBand splits [0, h) into contiguous bands and runs fn on
// each band concurrently. Callers read shared inputs and write only
// their own band's rows, so no locking is needed.
func forEachRowBand(ctx context.Context, h int, fn func(y0, y1 int) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > h {
		workers = h
	}
	if workers <= 1 {
		return fn(0, h)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	band := (h + workers - 1) / workers
	for y0 := 0; y0 < h; y0 += band {
		y0, y1 := y0, y0+band
		if y1 > h {
			y1 = h
		}
		g.Go(func() error {
			// A failed band cancels the group; skip bands still queued.
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(y0, y1)
		})
	}
	return g.Wait()
}
