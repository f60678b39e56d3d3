// internal/imaging/imaging.go
package imaging

import (
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

// Grid is a decoded pixel grid with per-pixel brightness in [0,1],
// 0 fully dark. It is the only image representation the driver consumes;
// file formats and color models stop here.
type Grid struct {
	width  int
	height int
	pix    []float64
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// BrightnessAt returns the brightness of pixel (x, y). Out-of-range
// coordinates read as white so partial trailing byte columns stay blank.
func (g *Grid) BrightnessAt(x, y int) float64 {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 1
	}
	return g.pix[y*g.width+x]
}

// Load decodes an image file (PNG, JPEG or BMP) into memory.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return img, nil
}

// Rasterize scales src to the given dot width, preserving aspect ratio,
// and converts it to a brightness grid using Rec. 601 luma weights.
func Rasterize(src image.Image, width int) *Grid {
	bounds := src.Bounds()
	height := bounds.Dy() * width / bounds.Dx()
	if height < 1 {
		height = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, xdraw.Over, nil)

	grid := &Grid{
		width:  width,
		height: height,
		pix:    make([]float64, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := scaled.At(x, y).RGBA()
			luma := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
			grid.pix[y*width+x] = luma / 0xFFFF
		}
	}
	return grid
}

// FromImage converts an already-sized image without scaling.
func FromImage(src image.Image) *Grid {
	bounds := src.Bounds()
	grid := &Grid{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		pix:    make([]float64, bounds.Dx()*bounds.Dy()),
	}
	for y := 0; y < grid.height; y++ {
		for x := 0; x < grid.width; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			luma := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
			grid.pix[y*grid.width+x] = luma / 0xFFFF
		}
	}
	return grid
}
