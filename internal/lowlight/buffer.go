// Package lowlight enhances images captured in low light.
//
// The pipeline estimates a per-pixel illumination map, refines it with
// an edge-aware guided filter, divides the illumination back out with
// gamma correction, and restores fine detail with unsharp masking.
// Every call is self-contained; concurrent calls share nothing.
//
// See also:
// https://ieeexplore.ieee.org/document/7782813 (LIME)
// http://kaiminghe.com/eccv10/ (guided filter)
package lowlight

import (
	"fmt"
	"image"
	"image/color"
)

// Plane is a single-channel grid of samples in row-major order.
// Values are normalized to [0, 1] at every stage boundary.
type Plane struct {
	stride int
	values []float64
}

func NewPlane(w, h int) *Plane {
	return &Plane{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (p *Plane) Dx() int { return p.stride }

func (p *Plane) Dy() int {
	if p.stride == 0 {
		return 0
	}
	return len(p.values) / p.stride
}
func (p *Plane) Get(x, y int) float64 { return p.values[p.stride*y+x] }

func (p *Plane) Set(x, y int, v float64) { p.values[p.stride*y+x] = v }

// Values exposes the backing slice. Callers must not resize it.
func (p *Plane) Values() []float64 { return p.values }

func (p *Plane) Clone() *Plane {
	out := &Plane{stride: p.stride, values: make([]float64, len(p.values))}
	copy(out.values, p.values)
	return out
}

// Clamp limits every sample to [lo, hi] in place and returns the plane.
// Clamping an already-clamped plane is a no-op.
func (p *Plane) Clamp(lo, hi float64) *Plane {
	for i, v := range p.values {
		if v < lo {
			p.values[i] = lo
		} else if v > hi {
			p.values[i] = hi
		}
	}
	return p
}

// Buffer is a pixel buffer of one (grayscale) or three (RGB) planes of
// identical dimensions. Stages read one buffer and produce a new one;
// no stage aliases its input.
type Buffer struct {
	Ch []*Plane
}

func NewBuffer(w, h, channels int) *Buffer {
	ch := make([]*Plane, channels)
	for i := range ch {
		ch[i] = NewPlane(w, h)
	}
	return &Buffer{Ch: ch}
}

func (b *Buffer) Dx() int       { return b.Ch[0].Dx() }
func (b *Buffer) Dy() int       { return b.Ch[0].Dy() }
func (b *Buffer) Channels() int { return len(b.Ch) }

func (b *Buffer) Clone() *Buffer {
	out := &Buffer{Ch: make([]*Plane, len(b.Ch))}
	for i, p := range b.Ch {
		out.Ch[i] = p.Clone()
	}
	return out
}

// Clamp01 limits every sample in every channel to [0, 1] in place.
func (b *Buffer) Clamp01() *Buffer {
	for _, p := range b.Ch {
		p.Clamp(0, 1)
	}
	return b
}

// validShape reports whether the buffer is non-empty with 1 or 3
// channels that all share the same dimensions.
func (b *Buffer) validShape() error {
	if b == nil || len(b.Ch) == 0 {
		return fmt.Errorf("empty buffer")
	}
	if n := len(b.Ch); n != 1 && n != 3 {
		return fmt.Errorf("buffer has %d channels, want 1 or 3", n)
	}
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("buffer has zero area (%dx%d)", w, h)
	}
	for i, p := range b.Ch {
		if p.Dx() != w || p.Dy() != h {
			return fmt.Errorf("channel %d is %dx%d, want %dx%d", i, p.Dx(), p.Dy(), w, h)
		}
	}
	return nil
}

// FromImage converts a decoded image into a 3-channel buffer with
// samples normalized to [0, 1]. Alpha is dropped.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	buf := NewBuffer(bounds.Dx(), bounds.Dy(), 3)

	// Fast path over raw pixels; At() boxes a color per pixel.
	if rgba, ok := img.(*image.RGBA); ok {
		pix := rgba.Pix
		for y := 0; y < bounds.Dy(); y++ {
			rowStart := y * rgba.Stride
			for x := 0; x < bounds.Dx(); x++ {
				i := rowStart + x*4
				buf.Ch[0].Set(x, y, float64(pix[i+0])/255.0)
				buf.Ch[1].Set(x, y, float64(pix[i+1])/255.0)
				buf.Ch[2].Set(x, y, float64(pix[i+2])/255.0)
			}
		}
		return buf
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			buf.Ch[0].Set(x-bounds.Min.X, y-bounds.Min.Y, float64(r16)/65535.0)
			buf.Ch[1].Set(x-bounds.Min.X, y-bounds.Min.Y, float64(g16)/65535.0)
			buf.Ch[2].Set(x-bounds.Min.X, y-bounds.Min.Y, float64(b16)/65535.0)
		}
	}
	return buf
}

// ToImage converts the buffer back to an 8-bit image, clamping into
// [0, 255] with round-to-nearest. A 1-channel buffer becomes gray.
func (b *Buffer) ToImage() *image.RGBA {
	w, h := b.Dx(), b.Dy()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	sample := func(p *Plane, x, y int) uint8 {
		v := p.Get(x, y)
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		return uint8(v*255.0 + 0.5)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var c color.RGBA
			if len(b.Ch) == 1 {
				g := sample(b.Ch[0], x, y)
				c = color.RGBA{R: g, G: g, B: g, A: 255}
			} else {
				c = color.RGBA{
					R: sample(b.Ch[0], x, y),
					G: sample(b.Ch[1], x, y),
					B: sample(b.Ch[2], x, y),
					A: 255,
				}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
