// Package imaging normalizes uploaded raster images before storage: flatten
// transparency onto white, downscale to a bound, re-encode as JPEG. The
// alpha channel is lost on purpose; stored images are opaque previews, not
// archival originals.
package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"

	xdraw "golang.org/x/image/draw"

	// Decoders registered for image.Decode.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"atelier-backend/internal/logging"
)

type Codec struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// Optimize transcodes data to a bounded, opaque JPEG. It fails soft: on any
// decode or encode problem the original bytes come back unchanged, so an
// upload never fails because optimization did.
func (c Codec) Optimize(data []byte) []byte {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		logging.LogKV("warn", "image optimization skipped", map[string]interface{}{
			"reason": err.Error(),
		})
		return data
	}

	img := flatten(src)

	if w, h := bounded(img.Bounds().Dx(), img.Bounds().Dy(), c.MaxWidth, c.MaxHeight); w != img.Bounds().Dx() || h != img.Bounds().Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: c.Quality}); err != nil {
		logging.LogKV("warn", "image re-encode failed", map[string]interface{}{
			"format": format,
			"reason": err.Error(),
		})
		return data
	}
	return buf.Bytes()
}

// flatten composites the image onto an opaque white background, dropping
// alpha and palette channels.
func flatten(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	xdraw.Draw(dst, dst.Bounds(), src, bounds.Min, xdraw.Over)
	return dst
}

// bounded returns dimensions scaled down to fit maxW×maxH, preserving aspect
// ratio. Images already within bounds keep their size; nothing is upscaled.
func bounded(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scaleW {
		scale = scaleH
	}
	outW := int(float64(w) * scale)
	outH := int(float64(h) * scale)
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}
	return outW, outH
}
