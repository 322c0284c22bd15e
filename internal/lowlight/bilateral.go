package lowlight

import (
	"context"
	"math"
)

// bilateralFilter denoises the buffer with a joint spatial/range
// kernel: neighbors are weighted by distance and by how similar their
// color is to the center pixel, so flat regions smooth out while
// edges keep their weight concentrated on one side. sigmaColor is in
// normalized [0, 1] sample units, sigmaSpace in pixels. Windows clip
// at the borders.
func bilateralFilter(ctx context.Context, b *Buffer, radius int, sigmaColor, sigmaSpace float64) (*Buffer, error) {
	if radius <= 0 || sigmaColor <= 0 || sigmaSpace <= 0 {
		return b.Clone(), nil
	}

	w, h := b.Dx(), b.Dy()
	channels := b.Channels()
	out := NewBuffer(w, h, channels)

	// Precomputed spatial weights for the window.
	size := 2*radius + 1
	spatial := make([]float64, size*size)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			spatial[(dy+radius)*size+(dx+radius)] = math.Exp(-d2 / (2 * sigmaSpace * sigmaSpace))
		}
	}
	invColor := 1 / (2 * sigmaColor * sigmaColor)

	err := forEachRowBand(ctx, h, func(y0, y1 int) error {
		center := make([]float64, channels)
		sums := make([]float64, channels)
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				for c := 0; c < channels; c++ {
					center[c] = b.Ch[c].Get(x, y)
					sums[c] = 0
				}
				weight := 0.0

				for dy := -radius; dy <= radius; dy++ {
					sy := y + dy
					if sy < 0 || sy >= h {
						continue
					}
					for dx := -radius; dx <= radius; dx++ {
						sx := x + dx
						if sx < 0 || sx >= w {
							continue
						}
						d2 := 0.0
						for c := 0; c < channels; c++ {
							d := b.Ch[c].Get(sx, sy) - center[c]
							d2 += d * d
						}
						wgt := spatial[(dy+radius)*size+(dx+radius)] * math.Exp(-d2*invColor)
						for c := 0; c < channels; c++ {
							sums[c] += wgt * b.Ch[c].Get(sx, sy)
						}
						weight += wgt
					}
				}

				for c := 0; c < channels; c++ {
					out.Ch[c].Set(x, y, sums[c]/weight)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
