package imaging_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/imaging"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestOptimizeTranscodesToJPEG(t *testing.T) {
	codec := imaging.Codec{MaxWidth: 1920, MaxHeight: 1080, Quality: 85}
	src := encodePNG(t, image.NewRGBA(image.Rect(0, 0, 50, 40)))

	out := codec.Optimize(src)

	_, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestOptimizeDownscalesToBounds(t *testing.T) {
	codec := imaging.Codec{MaxWidth: 100, MaxHeight: 100, Quality: 85}
	src := encodePNG(t, image.NewRGBA(image.Rect(0, 0, 400, 200)))

	out := codec.Optimize(src)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height, "aspect ratio preserved")
}

func TestOptimizeNeverUpscales(t *testing.T) {
	codec := imaging.Codec{MaxWidth: 1920, MaxHeight: 1080, Quality: 85}
	src := encodePNG(t, image.NewRGBA(image.Rect(0, 0, 30, 20)))

	out := codec.Optimize(src)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
}

func TestOptimizeFlattensTransparencyOntoWhite(t *testing.T) {
	codec := imaging.Codec{MaxWidth: 100, MaxHeight: 100, Quality: 95}

	// Fully transparent source.
	transparent := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	out := codec.Optimize(encodePNG(t, transparent))

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	r, g, b, _ := img.At(5, 5).RGBA()
	assert.Greater(t, r, uint32(0xf000))
	assert.Greater(t, g, uint32(0xf000))
	assert.Greater(t, b, uint32(0xf000))
}

func TestOptimizeFailsSoftOnGarbage(t *testing.T) {
	codec := imaging.Codec{MaxWidth: 100, MaxHeight: 100, Quality: 85}

	garbage := []byte("definitely not an image")
	out := codec.Optimize(garbage)
	assert.Equal(t, garbage, out, "undecodable input comes back unchanged")
}

func TestOptimizeFailsSoftOnEmptyInput(t *testing.T) {
	codec := imaging.Codec{MaxWidth: 100, MaxHeight: 100, Quality: 85}

	out := codec.Optimize(nil)
	assert.Nil(t, out)
}

func TestOptimizeKeepsOpaqueColors(t *testing.T) {
	codec := imaging.Codec{MaxWidth: 100, MaxHeight: 100, Quality: 95}

	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			src.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	out := codec.Optimize(encodePNG(t, src))

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	r, g, _, _ := img.At(5, 5).RGBA()
	assert.Greater(t, r, g, "red channel dominates after re-encode")
}
