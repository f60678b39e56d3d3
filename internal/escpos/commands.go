// internal/escpos/commands.go
package escpos

// Commands contains the wire-exact command prefixes understood by the
// printer firmware (ESC=0x1B, GS=0x1D). Entries marked with "+" take
// trailing argument bytes appended by the encoding functions.
var Commands = struct {
	// Device lifecycle
	Reset      []byte
	SleepMode  []byte
	Wake       []byte
	Heating    []byte // + max dots, heating time, heating interval

	// Line handling
	LineFeed    []byte
	FeedLines   []byte // + line count byte
	LineSpacing []byte // + dot count byte

	// Layout
	AlignLeft   []byte
	AlignCenter []byte
	AlignRight  []byte
	Indent      []byte // + column byte (0..31)

	// Print mode
	PrintMode []byte // + style bitset byte

	// Character sets
	SelectCharsetIBM437 []byte
	SelectCharsetIBM850 []byte

	// Barcodes
	BarcodePrint       []byte // + symbology byte, payload, NUL terminator
	BarcodeWidthNormal []byte
	BarcodeWidthLarge  []byte
	BarcodeLeftSpace   []byte // + dot count byte

	// Raster graphics
	RasterImage []byte // + width bytes LE, height bytes LE
}{
	// Device lifecycle
	Reset:     []byte{0x1B, 0x40},       // ESC @
	SleepMode: []byte{0x1B, 0x38, 0x00}, // ESC 8 0
	Wake:      []byte{0xFF},
	Heating:   []byte{0x1B, 0x37}, // ESC 7

	// Line handling
	LineFeed:    []byte{0x0A},       // LF
	FeedLines:   []byte{0x1B, 0x64}, // ESC d + n
	LineSpacing: []byte{0x1B, 0x33}, // ESC 3 + n

	// Layout
	AlignLeft:   []byte{0x1B, 0x61, 0x00}, // ESC a 0
	AlignCenter: []byte{0x1B, 0x61, 0x01}, // ESC a 1
	AlignRight:  []byte{0x1B, 0x61, 0x02}, // ESC a 2
	Indent:      []byte{0x1B, 0x42},       // ESC B + n

	// Print mode
	PrintMode: []byte{0x1B, 0x21}, // ESC ! + n

	// Character sets
	SelectCharsetIBM437: []byte{0x1B, 0x74, 0x00}, // ESC t 0
	SelectCharsetIBM850: []byte{0x1B, 0x74, 0x02}, // ESC t 2

	// Barcodes
	BarcodePrint:       []byte{0x1D, 0x6B},       // GS k + m
	BarcodeWidthNormal: []byte{0x1D, 0x77, 0x02}, // GS w 2
	BarcodeWidthLarge:  []byte{0x1D, 0x77, 0x03}, // GS w 3
	BarcodeLeftSpace:   []byte{0x1D, 0x78},       // GS x + n

	// Raster graphics
	RasterImage: []byte{0x1D, 0x76, 0x30, 0x00}, // GS v 0 0
}

// command copies a prefix from the table and appends its argument bytes.
// The table entries are shared, so callers never append to them directly.
func command(prefix []byte, args ...byte) []byte {
	out := make([]byte, 0, len(prefix)+len(args))
	out = append(out, prefix...)
	return append(out, args...)
}
