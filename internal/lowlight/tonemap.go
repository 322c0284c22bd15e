package lowlight

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Bounds for the adaptively chosen gamma exponent.
const (
	adaptiveGammaMin = 0.4
	adaptiveGammaMax = 1.0
)

// AdaptiveGamma derives a tone-mapping exponent from the mean of the
// refined illumination map: very dark images get a small exponent
// (strong brightening), already-lit images get an exponent near 1.
func AdaptiveGamma(illum *Plane) float64 {
	m := stat.Mean(illum.Values(), nil)
	g := adaptiveGammaMin + (adaptiveGammaMax-adaptiveGammaMin)*m
	if g < adaptiveGammaMin {
		g = adaptiveGammaMin
	}
	if g > adaptiveGammaMax {
		g = adaptiveGammaMax
	}
	return g
}

// ToneMap brightens the buffer by dividing each channel by the
// illumination map and applying gamma: out = clamp01((in/illum)^gamma).
// With the max-channel proxy the ratio never exceeds 1, so raising
// gamma toward 1 darkens (or holds) every pixel. The illumination
// floor bounds each output to (in/floor)^gamma, keeping near-black
// noise from being amplified without limit.
//
// gamma <= 0 selects the adaptive policy. The chosen exponent is
// returned alongside the mapped buffer.
func ToneMap(b *Buffer, illum *Plane, gamma float64) (*Buffer, float64, error) {
	if err := b.validShape(); err != nil {
		return nil, 0, fmt.Errorf("tone map: %w", err)
	}
	if illum.Dx() != b.Dx() || illum.Dy() != b.Dy() {
		return nil, 0, fmt.Errorf("tone map: illumination %dx%d does not match buffer %dx%d",
			illum.Dx(), illum.Dy(), b.Dx(), b.Dy())
	}
	if gamma <= 0 {
		gamma = AdaptiveGamma(illum)
	}

	w, h := b.Dx(), b.Dy()
	out := NewBuffer(w, h, b.Channels())
	for ci, ch := range b.Ch {
		dst := out.Ch[ci]
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.Set(x, y, math.Pow(ch.Get(x, y)/illum.Get(x, y), gamma))
			}
		}
	}
	return out.Clamp01(), gamma, nil
}
