package lowlight

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ProjectionMethod names a strategy for collapsing an RGB buffer into
// a single-channel illumination proxy.
type ProjectionMethod string

const (
	// ProjectMax takes the brightest channel per pixel. It bounds
	// illumination from above, so the later division can never push
	// the brightest channel past 1 before clamping.
	ProjectMax ProjectionMethod = "max"
	// ProjectAverage takes the channel mean; gentler on saturated
	// color casts that max-channel over-amplifies.
	ProjectAverage ProjectionMethod = "average"
	// ProjectGray uses BT.601 luma weights.
	ProjectGray ProjectionMethod = "gray"
	// ProjectLuminosity uses the HSV value channel.
	ProjectLuminosity ProjectionMethod = "luminosity"
)

type projectFunc func(r, g, b float64) float64

func projector(m ProjectionMethod) (projectFunc, error) {
	switch m {
	case ProjectMax, "":
		return func(r, g, b float64) float64 {
			return math.Max(r, math.Max(g, b))
		}, nil
	case ProjectAverage:
		return func(r, g, b float64) float64 {
			return (r + g + b) / 3
		}, nil
	case ProjectGray:
		return func(r, g, b float64) float64 {
			return 0.299*r + 0.587*g + 0.114*b
		}, nil
	case ProjectLuminosity:
		return func(r, g, b float64) float64 {
			_, _, v := colorful.Color{R: r, G: g, B: b}.Hsv()
			return v
		}, nil
	default:
		return nil, fmt.Errorf("no projection method named %q", m)
	}
}

// Project collapses a buffer into its illumination proxy. A grayscale
// buffer is its own proxy and is copied unchanged.
func Project(b *Buffer, m ProjectionMethod) (*Plane, error) {
	if err := b.validShape(); err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	if b.Channels() == 1 {
		return b.Ch[0].Clone(), nil
	}

	f, err := projector(m)
	if err != nil {
		return nil, err
	}

	out := NewPlane(b.Dx(), b.Dy())
	r, g, bl := b.Ch[0], b.Ch[1], b.Ch[2]
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, y, f(r.Get(x, y), g.Get(x, y), bl.Get(x, y)))
		}
	}
	return out, nil
}
