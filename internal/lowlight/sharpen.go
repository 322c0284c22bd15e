package lowlight

import (
	"context"
	"fmt"
)

// Sharpen restores fine detail attenuated by the smoothing stages via
// unsharp masking: blur the buffer, take the high-frequency residual,
// and add amount*residual back, clamped to [0, 1].
//
// An amount of 0 returns an unmodified copy of the input.
func Sharpen(ctx context.Context, b *Buffer, amount float64, radius int) (*Buffer, error) {
	if err := b.validShape(); err != nil {
		return nil, fmt.Errorf("sharpen: %w", err)
	}
	if amount == 0 || radius <= 0 {
		return b.Clone(), nil
	}

	w, h := b.Dx(), b.Dy()
	out := NewBuffer(w, h, b.Channels())
	for ci, ch := range b.Ch {
		blurred := boxMean(ch, radius)
		dst := out.Ch[ci]
		if err := forEachRowBand(ctx, h, func(y0, y1 int) error {
			for y := y0; y < y1; y++ {
				for x := 0; x < w; x++ {
					v := ch.Get(x, y)
					dst.Set(x, y, v+amount*(v-blurred.Get(x, y)))
				}
			}
			return nil
		}); err != nil {
			return nil, err
		}
	}
	return out.Clamp01(), nil
}
