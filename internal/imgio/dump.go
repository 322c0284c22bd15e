package imgio

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/floats"

	"github.com/erinpentecost/relight/internal/lowlight"
)

// DumpPlane writes a captioned grayscale PNG of a single-channel map,
// stretching its value range to full contrast so near-flat
// illumination maps stay readable.
func DumpPlane(path string, p *lowlight.Plane, caption string) error {
	values := p.Values()
	if len(values) == 0 {
		return fmt.Errorf("dump %q: empty plane", path)
	}
	lo := floats.Min(values)
	hi := floats.Max(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, p.Dx(), p.Dy()))
	for y := 0; y < p.Dy(); y++ {
		for x := 0; x < p.Dx(); x++ {
			g := uint8((p.Get(x, y) - lo) / span * 255.0)
			img.SetRGBA(x, y, color.RGBA{R: g, G: g, B: g, A: 255})
		}
	}

	dc := gg.NewContextForImage(img)
	if caption != "" {
		dc.SetRGB(1, 0.2, 0.2)
		dc.DrawString(caption, 10, 20)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save %q: %w", path, err)
	}
	return nil
}
