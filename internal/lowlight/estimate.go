package lowlight

import "math"

// The estimator pre-smooths with a small fixed-size kernel, matching
// the 5x5 window the rest of the parameter surface was tuned against.
const estimateBlurRadius = 2

// EstimateIllumination turns the illumination proxy into the coarse
// illumination map: an optional Gaussian smoothing pass, a dark-region
// lift scaled by alpha, and a clamp into [floor, 1].
//
// The map is later used as a divisor, so the floor is what bounds the
// worst-case per-pixel gain; values are never allowed below it.
func EstimateIllumination(proxy *Plane, alpha, sigma, floor float64) *Plane {
	out := gaussianBlur(proxy, estimateBlurRadius, sigma)

	// v^(1/(1+alpha)) is monotone and concave: it pulls very dark
	// regions up proportionally more than moderately lit ones, and
	// is the identity at alpha 0.
	exp := 1 / (1 + alpha)
	values := out.Values()
	for i, v := range values {
		if v > 0 {
			values[i] = math.Pow(v, exp)
		}
	}

	return out.Clamp(floor, 1)
}
