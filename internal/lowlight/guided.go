package lowlight

import (
	"context"
	"fmt"
)

// GuidedFilter smooths src while respecting edges in guide, using the
// box-filtered formulation of He et al.'s guided filter: per window,
// fit the linear model src ≈ a*guide + b in closed form, average the
// coefficients of overlapping windows, then apply them per pixel.
// Averaging coefficients (rather than window outputs) keeps the cost
// near-linear in image size regardless of radius.
//
// eps trades edge sharpness against smoothness and must be > 0.
// Windows are clipped at the borders, not zero-padded.
func GuidedFilter(ctx context.Context, src, guide *Plane, radius int, eps float64) (*Plane, error) {
	if src.Dx() != guide.Dx() || src.Dy() != guide.Dy() {
		return nil, fmt.Errorf("guided filter: src %dx%d does not match guide %dx%d",
			src.Dx(), src.Dy(), guide.Dx(), guide.Dy())
	}
	if eps <= 0 {
		return nil, fmt.Errorf("guided filter: eps must be > 0, got %g", eps)
	}
	if radius <= 0 {
		return src.Clone(), nil
	}

	w, h := src.Dx(), src.Dy()

	// Window means of the guide, the source, and their products.
	meanI := boxMean(guide, radius)
	meanP := boxMean(src, radius)

	ii := NewPlane(w, h)
	ip := NewPlane(w, h)
	if err := forEachRowBand(ctx, h, func(y0, y1 int) error {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				gv := guide.Get(x, y)
				ii.Set(x, y, gv*gv)
				ip.Set(x, y, gv*src.Get(x, y))
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	corrII := boxMean(ii, radius)
	corrIP := boxMean(ip, radius)

	// Per-pixel linear coefficients from window covariance/variance.
	a := NewPlane(w, h)
	b := NewPlane(w, h)
	if err := forEachRowBand(ctx, h, func(y0, y1 int) error {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				mi := meanI.Get(x, y)
				mp := meanP.Get(x, y)
				varI := corrII.Get(x, y) - mi*mi
				covIP := corrIP.Get(x, y) - mi*mp
				av := covIP / (varI + eps)
				a.Set(x, y, av)
				b.Set(x, y, mp-av*mi)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	meanA := boxMean(a, radius)
	meanB := boxMean(b, radius)

	out := NewPlane(w, h)
	if err := forEachRowBand(ctx, h, func(y0, y1 int) error {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				out.Set(x, y, meanA.Get(x, y)*guide.Get(x, y)+meanB.Get(x, y))
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}
