package lowlight

import (
	"context"
	"fmt"
)

// Enhancer turns a dark pixel buffer into a brighter one. The input is
// never modified; implementations return a freshly allocated buffer of
// identical shape. Enhancement is deterministic, so retrying with the
// same input and parameters is pointless and no implementation does.
type Enhancer interface {
	Enhance(ctx context.Context, src *Buffer, p Params) (*Buffer, error)
}

// New returns the enhancer for a strategy name.
func New(s Strategy) (Enhancer, error) {
	switch s {
	case StrategyLime, "":
		return &Pipeline{}, nil
	case StrategyHybrid:
		return &HybridPipeline{}, nil
	default:
		return nil, fmt.Errorf("no enhancement strategy named %q", s)
	}
}

// Pipeline is the classic illumination-map enhancer: project, estimate,
// refine, tone map, sharpen. Stateless; safe for concurrent use.
type Pipeline struct{}

func (pl *Pipeline) Enhance(ctx context.Context, src *Buffer, p Params) (*Buffer, error) {
	out, _, err := enhanceClassic(ctx, src, p, StrategyLime)
	return out, err
}

// enhanceClassic runs the five-stage pipeline and also returns the
// refined illumination map so the hybrid strategy and the debug dump
// can reuse it.
func enhanceClassic(ctx context.Context, src *Buffer, p Params, s Strategy) (*Buffer, *Plane, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if err := src.validShape(); err != nil {
		return nil, nil, fmt.Errorf("invalid input: %w", err)
	}

	proxy, err := Project(src, p.Method)
	if err != nil {
		return nil, nil, err
	}

	coarse := EstimateIllumination(proxy, p.Alpha, p.BlurSigma, p.floor(s))

	refined, err := GuidedFilter(ctx, coarse, proxy, p.GuidedRadius, p.GuidedEpsilon)
	if err != nil {
		return nil, nil, err
	}
	// Refinement can overshoot the estimator's bounds; re-impose them
	// before the map is used as a divisor.
	refined.Clamp(p.floor(s), 1)

	mapped, _, err := ToneMap(src, refined, p.Gamma)
	if err != nil {
		return nil, nil, err
	}

	sharpened, err := Sharpen(ctx, mapped, p.SharpenAmount, p.SharpenRadius)
	if err != nil {
		return nil, nil, err
	}
	return sharpened, refined, nil
}

// IlluminationMaps runs only the estimation half of the pipeline and
// returns the coarse and refined maps, for inspection.
func IlluminationMaps(ctx context.Context, src *Buffer, p Params) (coarse, refined *Plane, err error) {
	if err := p.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if err := src.validShape(); err != nil {
		return nil, nil, fmt.Errorf("invalid input: %w", err)
	}
	proxy, err := Project(src, p.Method)
	if err != nil {
		return nil, nil, err
	}
	coarse = EstimateIllumination(proxy, p.Alpha, p.BlurSigma, p.Beta)
	refined, err = GuidedFilter(ctx, coarse, proxy, p.GuidedRadius, p.GuidedEpsilon)
	if err != nil {
		return nil, nil, err
	}
	refined.Clamp(p.Beta, 1)
	return coarse, refined, nil
}
