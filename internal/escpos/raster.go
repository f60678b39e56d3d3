// internal/escpos/raster.go
package escpos

import (
	"errors"
	"fmt"
)

// The raster command addresses exactly one head line per row: 384 dots
// packed into 48 byte columns. The height field is 16 bits. Both limits
// come from the firmware, not from this package.
const (
	RasterWidth     = 384
	RasterRowBytes  = RasterWidth / 8
	maxRasterHeight = 0xFFFF
)

// darkThreshold splits brightness into printed and blank dots.
const darkThreshold = 0.5

// ErrImageDimensions reports an image the raster command cannot express.
var ErrImageDimensions = errors.New("image dimensions unsupported by raster command")

// RasterSource is the decoded pixel grid the codec consumes. Brightness is
// in [0,1] with 0 fully dark. Image decoding and scaling live elsewhere.
type RasterSource interface {
	Width() int
	Height() int
	BrightnessAt(x, y int) float64
}

// RasterHeader validates the image bounds and returns the 8-byte raster
// command header: GS v 0 0, width bytes LE, height LE. It is emitted once,
// ahead of the packed rows.
func RasterHeader(img RasterSource) ([]byte, error) {
	if img.Width() != RasterWidth {
		return nil, fmt.Errorf("%w: width %d, want %d", ErrImageDimensions, img.Width(), RasterWidth)
	}
	if img.Height() < 0 || img.Height() > maxRasterHeight {
		return nil, fmt.Errorf("%w: height %d exceeds %d", ErrImageDimensions, img.Height(), maxRasterHeight)
	}

	h := img.Height()
	return command(Commands.RasterImage,
		RasterRowBytes, 0x00,
		byte(h%256), byte(h/256),
	), nil
}

// PackRasterRow packs one image row into 48 bytes, LSB first: bit n of
// byte column x covers dot 8x+n, set when the pixel is dark.
func PackRasterRow(img RasterSource, y int) []byte {
	row := make([]byte, RasterRowBytes)
	for x := 0; x < RasterRowBytes; x++ {
		var b byte
		for n := 0; n < 8; n++ {
			if img.BrightnessAt(x*8+n, y) < darkThreshold {
				b |= 1 << n
			}
		}
		row[x] = b
	}
	return row
}

// EncodeRaster produces the complete raster byte sequence: header plus
// height x 48 packed row bytes. The session prefers the row-wise form so
// it can interleave settle delays; this one serves one-shot callers and
// keeps the full-sequence contract testable.
func EncodeRaster(img RasterSource) ([]byte, error) {
	header, err := RasterHeader(img)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(header)+img.Height()*RasterRowBytes)
	out = append(out, header...)
	for y := 0; y < img.Height(); y++ {
		out = append(out, PackRasterRow(img, y)...)
	}
	return out, nil
}
