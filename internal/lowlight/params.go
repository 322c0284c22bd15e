package lowlight

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Strategy names an enhancement implementation.
type Strategy string

const (
	// StrategyLime is the classic illumination-map pipeline.
	StrategyLime Strategy = "lime"
	// StrategyHybrid adds denoising, saturation correction and a
	// source blend on top of the classic pipeline.
	StrategyHybrid Strategy = "hybrid"
)

// Params configures one enhancement run. Treat a value as immutable
// once handed to Enhance.
type Params struct {
	// Method selects the illumination proxy (see project.go).
	Method ProjectionMethod `yaml:"method"`

	// Alpha scales how strongly very dark regions are lifted while
	// estimating illumination. Must be > 0.
	Alpha float64 `yaml:"alpha"`
	// Beta is the illumination floor. The refined map never drops
	// below it, bounding per-pixel gain to (1/beta)^gamma.
	Beta float64 `yaml:"beta"`
	// Gamma is the tone-mapping exponent. A value <= 0 selects the
	// adaptive policy, which derives the exponent from the mean of
	// the refined illumination map.
	Gamma float64 `yaml:"gamma"`
	// BlurSigma smooths the illumination proxy before estimation.
	// <= 0 skips the smoothing pass.
	BlurSigma float64 `yaml:"blurSigma"`

	// GuidedRadius and GuidedEpsilon configure the edge-aware
	// refinement window and its regularization.
	GuidedRadius  int     `yaml:"guidedRadius"`
	GuidedEpsilon float64 `yaml:"guidedEpsilon"`

	// SharpenAmount and SharpenRadius configure detail restoration.
	// Amount 0 makes the stage the identity.
	SharpenAmount float64 `yaml:"sharpenAmount"`
	SharpenRadius int     `yaml:"sharpenRadius"`

	// Hybrid-only knobs.
	MaxGain         float64 `yaml:"maxGain"`
	DenoiseStrength int     `yaml:"denoiseStrength"`
	SaturationScale float64 `yaml:"saturationScale"`
	BlendWeight     float64 `yaml:"blendWeight"`
}

// DefaultParams returns the documented defaults.
func DefaultParams() Params {
	return Params{
		Method:          ProjectMax,
		Alpha:           0.15,
		Beta:            0.08,
		Gamma:           0.8,
		BlurSigma:       3,
		GuidedRadius:    15,
		GuidedEpsilon:   1e-3,
		SharpenAmount:   0.5,
		SharpenRadius:   1,
		MaxGain:         5,
		DenoiseStrength: 10,
		SaturationScale: 1,
		BlendWeight:     0.8,
	}
}

// LoadParams reads a yaml preset file and merges it over the defaults.
// Fields absent from the file keep their default values.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read params %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("parse params %q: %w", path, err)
	}
	return p, nil
}

// Validate rejects out-of-range parameters before any pixel work.
func (p Params) Validate() error {
	if _, err := projector(p.Method); err != nil {
		return err
	}
	if p.Alpha <= 0 {
		return fmt.Errorf("alpha must be > 0, got %g", p.Alpha)
	}
	if p.Beta <= 0 || p.Beta >= 1 {
		return fmt.Errorf("beta must be in (0, 1), got %g", p.Beta)
	}
	if p.GuidedRadius < 0 {
		return fmt.Errorf("guidedRadius must be >= 0, got %d", p.GuidedRadius)
	}
	if p.GuidedEpsilon <= 0 {
		return fmt.Errorf("guidedEpsilon must be > 0, got %g", p.GuidedEpsilon)
	}
	if p.SharpenAmount < 0 {
		return fmt.Errorf("sharpenAmount must be >= 0, got %g", p.SharpenAmount)
	}
	if p.SharpenRadius < 0 {
		return fmt.Errorf("sharpenRadius must be >= 0, got %d", p.SharpenRadius)
	}
	if p.MaxGain < 1 {
		return fmt.Errorf("maxGain must be >= 1, got %g", p.MaxGain)
	}
	if p.BlendWeight < 0 || p.BlendWeight > 1 {
		return fmt.Errorf("blendWeight must be in [0, 1], got %g", p.BlendWeight)
	}
	return nil
}

// floor is the lowest illumination value the estimator may emit.
// The hybrid strategy raises it so gain never exceeds maxGain.
func (p Params) floor(strategy Strategy) float64 {
	if strategy == StrategyHybrid && 1/p.MaxGain > p.Beta {
		return 1 / p.MaxGain
	}
	return p.Beta
}
