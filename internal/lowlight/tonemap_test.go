package lowlight

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToneMapBrightensDarkPixels(t *testing.T) {
	b := rgbBuffer(0.02, 0.04, 0.05)
	illum := flatPlane(1, 1, 0.08)

	out, gamma, err := ToneMap(b, illum, 0.8)
	require.NoError(t, err)
	require.Equal(t, 0.8, gamma)

	for c := 0; c < 3; c++ {
		in := b.Ch[c].Get(0, 0)
		got := out.Ch[c].Get(0, 0)
		if got <= in {
			t.Fatalf("channel %d not brightened: %f <= %f", c, got, in)
		}
		// The floored divisor bounds the output to (in/floor)^gamma.
		if got > math.Pow(in/0.08, 0.8)+1e-12 {
			t.Fatalf("channel %d exceeds floored-divisor bound: %f", c, got)
		}
	}
}

func TestToneMapWhiteStaysWhite(t *testing.T) {
	b := rgbBuffer(1, 1, 1)
	illum := flatPlane(1, 1, 1)

	out, _, err := ToneMap(b, illum, 0.8)
	require.NoError(t, err)
	for c := 0; c < 3; c++ {
		require.Equal(t, 1.0, out.Ch[c].Get(0, 0))
	}
}

// Raising gamma toward 1 must darken (or hold) every pixel, since the
// input/illumination ratio never exceeds 1 under the max proxy.
func TestToneMapGammaMonotone(t *testing.T) {
	b := NewBuffer(4, 4, 3)
	illum := NewPlane(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v := 0.05 + 0.2*float64(x+y)/6
			b.Ch[0].Set(x, y, v)
			b.Ch[1].Set(x, y, v/2)
			b.Ch[2].Set(x, y, v/3)
			illum.Set(x, y, math.Max(v, 0.08))
		}
	}

	low, _, err := ToneMap(b, illum, 0.5)
	require.NoError(t, err)
	high, _, err := ToneMap(b, illum, 0.9)
	require.NoError(t, err)

	for c := 0; c < 3; c++ {
		for i, hv := range high.Ch[c].Values() {
			lv := low.Ch[c].Values()[i]
			if hv > lv+1e-12 {
				t.Fatalf("channel %d index %d: gamma 0.9 brighter than 0.5 (%f > %f)", c, i, hv, lv)
			}
		}
	}
}

func TestToneMapOutputBounded(t *testing.T) {
	// Average proxy can leave channels above the illumination value;
	// the result must still clamp to [0, 1].
	b := rgbBuffer(1, 0.1, 0.1)
	illum := flatPlane(1, 1, 0.4)

	out, _, err := ToneMap(b, illum, 0.8)
	require.NoError(t, err)
	for c := 0; c < 3; c++ {
		v := out.Ch[c].Get(0, 0)
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)
	}
}

func TestToneMapIdentity(t *testing.T) {
	b := rgbBuffer(0.25, 0.5, 0.75)
	illum := flatPlane(1, 1, 1)

	out, _, err := ToneMap(b, illum, 1)
	require.NoError(t, err)
	for c := 0; c < 3; c++ {
		require.Equal(t, b.Ch[c].Get(0, 0), out.Ch[c].Get(0, 0))
	}
}

func TestToneMapShapeMismatch(t *testing.T) {
	_, _, err := ToneMap(NewBuffer(2, 2, 3), NewPlane(3, 2), 0.8)
	require.Error(t, err)
}

func TestAdaptiveGamma(t *testing.T) {
	dark := AdaptiveGamma(flatPlane(4, 4, 0.1))
	lit := AdaptiveGamma(flatPlane(4, 4, 0.9))

	require.InDelta(t, 0.46, dark, 1e-9)
	require.InDelta(t, 0.94, lit, 1e-9)
	if dark >= lit {
		t.Fatalf("darker image should pick smaller gamma: %f >= %f", dark, lit)
	}
}

func TestToneMapAdaptiveSelection(t *testing.T) {
	b := rgbBuffer(0.1, 0.1, 0.1)
	illum := flatPlane(1, 1, 0.2)

	_, gamma, err := ToneMap(b, illum, 0)
	require.NoError(t, err)
	require.InDelta(t, AdaptiveGamma(illum), gamma, 1e-12)
	require.GreaterOrEqual(t, gamma, 0.4)
	require.LessOrEqual(t, gamma, 1.0)
}
