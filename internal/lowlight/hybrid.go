package lowlight

import (
	"context"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HybridPipeline layers post-processing over the classic pipeline:
// the illumination floor is raised so gain never exceeds MaxGain, the
// result is bilateral-denoised, saturation is rescaled, and the output
// is blended with the source for a more natural look. Stateless; safe
// for concurrent use.
type HybridPipeline struct{}

func (hp *HybridPipeline) Enhance(ctx context.Context, src *Buffer, p Params) (*Buffer, error) {
	out, _, err := enhanceClassic(ctx, src, p, StrategyHybrid)
	if err != nil {
		return nil, err
	}

	if p.DenoiseStrength > 0 {
		// Diameter capped at 9 keeps the window small; the sigmas
		// scale with strength, converted from 8-bit units.
		diameter := p.DenoiseStrength
		if diameter > 9 {
			diameter = 9
		}
		sigma := float64(2*p.DenoiseStrength) / 255.0
		out, err = bilateralFilter(ctx, out, diameter/2, sigma, float64(2*p.DenoiseStrength))
		if err != nil {
			return nil, err
		}
	}

	if p.SaturationScale != 1 && out.Channels() == 3 {
		scaleSaturation(out, p.SaturationScale)
	}

	if p.BlendWeight < 1 {
		blend(out, src, p.BlendWeight)
	}

	return out.Clamp01(), nil
}

// scaleSaturation rescales the HSV saturation channel in place.
func scaleSaturation(b *Buffer, scale float64) {
	w, h := b.Dx(), b.Dy()
	r, g, bl := b.Ch[0], b.Ch[1], b.Ch[2]
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hv, s, v := colorful.Color{R: r.Get(x, y), G: g.Get(x, y), B: bl.Get(x, y)}.Hsv()
			s *= scale
			if s > 1 {
				s = 1
			}
			c := colorful.Hsv(hv, s, v)
			r.Set(x, y, c.R)
			g.Set(x, y, c.G)
			bl.Set(x, y, c.B)
		}
	}
}

// blend mixes weight*dst + (1-weight)*src into dst.
func blend(dst, src *Buffer, weight float64) {
	for ci, ch := range dst.Ch {
		dv := ch.Values()
		sv := src.Ch[ci].Values()
		for i := range dv {
			dv[i] = weight*dv[i] + (1-weight)*sv[i]
		}
	}
}
