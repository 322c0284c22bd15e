// Package imgio owns the codec boundary: decoding input photos,
// encoding enhanced output, and debug renderings. The enhancement core
// never touches files or codecs.
package imgio

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/dblezek/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	_ "image/gif"
)

// jpegQuality matches what the rest of the toolchain expects from
// enhanced output.
const jpegQuality = 95

// Decode reads an image from disk, picking the codec by extension for
// TGA (which has no magic bytes) and by content otherwise.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err := tga.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode tga %q: %w", path, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return img, nil
}

// Encode writes an image to disk, picking the codec by extension.
func Encode(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer out.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(out, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(out, img, &jpeg.Options{Quality: jpegQuality})
	case ".bmp":
		err = bmp.Encode(out, img)
	case ".tif", ".tiff":
		err = tiff.Encode(out, img, nil)
	case ".tga":
		err = tga.Encode(out, img)
	default:
		return fmt.Errorf("no encoder for %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encode %q: %w", path, err)
	}
	return nil
}

// ScaleToFit downscales img so neither side exceeds maxDim, keeping
// aspect ratio. Images already within bounds are returned converted
// but unscaled.
func ScaleToFit(img image.Image, maxDim int) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if maxDim > 0 && (w > maxDim || h > maxDim) {
		if w >= h {
			h = h * maxDim / w
			w = maxDim
		} else {
			w = w * maxDim / h
			h = maxDim
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
