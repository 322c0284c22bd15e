package lowlight

import "math"

// boxMean computes the mean of each (2r+1)-sided window, clipping
// windows at the borders to the valid region rather than zero-padding,
// so border estimates stay unbiased. Implemented as two separable
// passes with running sums; cost is independent of the radius.
func boxMean(p *Plane, radius int) *Plane {
	if radius <= 0 {
		return p.Clone()
	}
	w, h := p.Dx(), p.Dy()
	tmp := NewPlane(w, h)
	out := NewPlane(w, h)

	// Horizontal pass into tmp.
	for y := 0; y < h; y++ {
		sum := 0.0
		// Prime the window for x = 0.
		hi := radius
		if hi > w-1 {
			hi = w - 1
		}
		for x := 0; x <= hi; x++ {
			sum += p.Get(x, y)
		}
		count := hi + 1
		tmp.Set(0, y, sum/float64(count))

		for x := 1; x < w; x++ {
			if add := x + radius; add < w {
				sum += p.Get(add, y)
				count++
			}
			if drop := x - radius - 1; drop >= 0 {
				sum -= p.Get(drop, y)
				count--
			}
			tmp.Set(x, y, sum/float64(count))
		}
	}

	// Vertical pass into out. The per-axis counts factorize, so
	// normalizing each pass separately equals the full 2D mean.
	for x := 0; x < w; x++ {
		sum := 0.0
		hi := radius
		if hi > h-1 {
			hi = h - 1
		}
		for y := 0; y <= hi; y++ {
			sum += tmp.Get(x, y)
		}
		count := hi + 1
		out.Set(x, 0, sum/float64(count))

		for y := 1; y < h; y++ {
			if add := y + radius; add < h {
				sum += tmp.Get(x, add)
				count++
			}
			if drop := y - radius - 1; drop >= 0 {
				sum -= tmp.Get(x, drop)
				count--
			}
			out.Set(x, y, sum/float64(count))
		}
	}

	return out
}

// gaussianKernel builds a normalized 1D kernel of the given radius.
func gaussianKernel(radius int, sigma float64) []float64 {
	k := make([]float64, 2*radius+1)
	sum := 0.0
	for i := range k {
		d := float64(i - radius)
		k[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// gaussianBlur smooths the plane with a separable Gaussian, clipping
// (and renormalizing) the kernel at the borders.
func gaussianBlur(p *Plane, radius int, sigma float64) *Plane {
	if radius <= 0 || sigma <= 0 {
		return p.Clone()
	}
	w, h := p.Dx(), p.Dy()
	k := gaussianKernel(radius, sigma)
	tmp := NewPlane(w, h)
	out := NewPlane(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum, weight := 0.0, 0.0
			for i, kv := range k {
				sx := x + i - radius
				if sx < 0 || sx >= w {
					continue
				}
				sum += kv * p.Get(sx, y)
				weight += kv
			}
			tmp.Set(x, y, sum/weight)
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum, weight := 0.0, 0.0
			for i, kv := range k {
				sy := y + i - radius
				if sy < 0 || sy >= h {
					continue
				}
				sum += kv * tmp.Get(x, sy)
				weight += kv
			}
			out.Set(x, y, sum/weight)
		}
	}

	return out
}
