package lowlight

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEstimateBounds(t *testing.T) {
	p := NewPlane(6, 6)
	for i := range p.Values() {
		p.Values()[i] = math.Mod(float64(i)*0.61, 1.2) // some values above 1
	}

	got := EstimateIllumination(p, 0.15, 3, 0.08)
	for i, v := range got.Values() {
		if v < 0.08 || v > 1 {
			t.Fatalf("value %d out of [0.08, 1]: %f", i, v)
		}
	}
}

func TestEstimateLiftsDarkRegionsMore(t *testing.T) {
	p := NewPlane(2, 1)
	p.Set(0, 0, 0.2)
	p.Set(1, 0, 0.8)

	// No smoothing so the lift is isolated.
	got := EstimateIllumination(p, 0.5, 0, 0.01)

	liftDark := got.Get(0, 0) / 0.2
	liftLit := got.Get(1, 0) / 0.8
	if liftDark <= liftLit {
		t.Fatalf("dark lift %f not greater than lit lift %f", liftDark, liftLit)
	}
	// Still monotone.
	if got.Get(0, 0) >= got.Get(1, 0) {
		t.Fatalf("lift broke ordering: %f >= %f", got.Get(0, 0), got.Get(1, 0))
	}
}

func TestEstimateSkipsSmoothingWhenSigmaZero(t *testing.T) {
	p := flatPlane(4, 4, 0.5)
	p.Set(1, 1, 0.9)

	got := EstimateIllumination(p, 0.15, 0, 0.08)
	want := math.Pow(0.9, 1/1.15)
	require.InDelta(t, want, got.Get(1, 1), 1e-12)
}

func TestEstimateSmoothingSpreadsPeak(t *testing.T) {
	p := flatPlane(9, 9, 0.2)
	p.Set(4, 4, 1)

	smoothed := EstimateIllumination(p, 0.15, 3, 0.01)
	raw := EstimateIllumination(p, 0.15, 0, 0.01)

	if smoothed.Get(4, 4) >= raw.Get(4, 4) {
		t.Fatalf("peak not attenuated by smoothing: %f >= %f", smoothed.Get(4, 4), raw.Get(4, 4))
	}
	if smoothed.Get(3, 4) <= raw.Get(3, 4) {
		t.Fatalf("peak not spread to neighbor: %f <= %f", smoothed.Get(3, 4), raw.Get(3, 4))
	}
}

func TestEstimateZeroStaysAtFloor(t *testing.T) {
	p := NewPlane(3, 3)
	got := EstimateIllumination(p, 0.15, 3, 0.08)
	for _, v := range got.Values() {
		require.Equal(t, 0.08, v)
	}
}
