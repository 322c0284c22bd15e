package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.coder.com/cli"

	"github.com/erinpentecost/relight/internal/imgio"
	"github.com/erinpentecost/relight/internal/lowlight"
)

// illumCmd dumps the intermediate illumination maps so filter
// parameters can be tuned by eye.
type illumCmd struct {
	paramsFile string
	method     string
}

func (c *illumCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "illum",
		Usage: "[flags] <input> <coarse.png> <refined.png>",
		Desc:  "Write the coarse and refined illumination maps as grayscale PNGs.",
	}
}

func (c *illumCmd) RegisterFlags(fl *pflag.FlagSet) {
	fl.StringVar(&c.paramsFile, "params", "", "yaml preset file merged over defaults")
	fl.StringVar(&c.method, "method", "", "illumination proxy override")
}

func (c *illumCmd) Run(fl *pflag.FlagSet) {
	if fl.NArg() != 3 {
		fl.Usage()
		os.Exit(2)
	}
	if err := c.run(fl.Arg(0), fl.Arg(1), fl.Arg(2)); err != nil {
		fmt.Fprintf(os.Stderr, "FAILED: %v\n", err)
		os.Exit(1)
	}
}

func (c *illumCmd) run(inPath, coarsePath, refinedPath string) error {
	p := lowlight.DefaultParams()
	if c.paramsFile != "" {
		loaded, err := lowlight.LoadParams(c.paramsFile)
		if err != nil {
			return err
		}
		p = loaded
	}
	if c.method != "" {
		p.Method = lowlight.ProjectionMethod(c.method)
	}

	img, err := imgio.Decode(inPath)
	if err != nil {
		return err
	}

	coarse, refined, err := lowlight.IlluminationMaps(context.Background(), lowlight.FromImage(imgio.ScaleToFit(img, 0)), p)
	if err != nil {
		return fmt.Errorf("illumination maps for %q: %w", inPath, err)
	}

	if err := imgio.DumpPlane(coarsePath, coarse, "coarse illumination"); err != nil {
		return err
	}
	if err := imgio.DumpPlane(refinedPath, refined, "refined illumination"); err != nil {
		return err
	}
	return nil
}
