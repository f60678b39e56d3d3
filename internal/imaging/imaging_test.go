// internal/imaging/imaging_test.go
package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermal-printer/internal/escpos"
)

// Grid must plug directly into the raster encoder.
var _ escpos.RasterSource = (*Grid)(nil)

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFromImageLumaExtremes(t *testing.T) {
	black := FromImage(solidImage(4, 2, color.Black))
	white := FromImage(solidImage(4, 2, color.White))

	assert.Equal(t, 4, black.Width())
	assert.Equal(t, 2, black.Height())

	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			assert.InDelta(t, 0.0, black.BrightnessAt(x, y), 0.01)
			assert.InDelta(t, 1.0, white.BrightnessAt(x, y), 0.01)
		}
	}
}

func TestFromImageHonorsBoundsOffset(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 14, 22))
	for y := 20; y < 22; y++ {
		for x := 10; x < 14; x++ {
			src.Set(x, y, color.Black)
		}
	}
	src.Set(10, 20, color.White)

	grid := FromImage(src)
	require.Equal(t, 4, grid.Width())
	require.Equal(t, 2, grid.Height())
	assert.InDelta(t, 1.0, grid.BrightnessAt(0, 0), 0.01)
	assert.InDelta(t, 0.0, grid.BrightnessAt(1, 0), 0.01)
}

func TestBrightnessAtOutOfRangeReadsWhite(t *testing.T) {
	grid := FromImage(solidImage(4, 2, color.Black))

	assert.Equal(t, 1.0, grid.BrightnessAt(-1, 0))
	assert.Equal(t, 1.0, grid.BrightnessAt(4, 0))
	assert.Equal(t, 1.0, grid.BrightnessAt(0, -1))
	assert.Equal(t, 1.0, grid.BrightnessAt(0, 2))
}

func TestRasterizePreservesAspectRatio(t *testing.T) {
	grid := Rasterize(solidImage(100, 50, color.Black), 384)

	assert.Equal(t, 384, grid.Width())
	assert.Equal(t, 192, grid.Height())

	// Scaling a solid image must not introduce brightness artifacts.
	assert.InDelta(t, 0.0, grid.BrightnessAt(0, 0), 0.01)
	assert.InDelta(t, 0.0, grid.BrightnessAt(383, 191), 0.01)
	assert.InDelta(t, 0.0, grid.BrightnessAt(192, 96), 0.01)
}

func TestRasterizeVeryWideImageKeepsOneRow(t *testing.T) {
	grid := Rasterize(solidImage(1000, 1, color.White), 384)

	assert.Equal(t, 384, grid.Width())
	assert.Equal(t, 1, grid.Height())
}

func TestLoadDecodesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, solidImage(8, 8, color.Black)))
	require.NoError(t, f.Close())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}
