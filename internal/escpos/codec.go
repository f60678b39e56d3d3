// internal/escpos/codec.go
package escpos

import "strings"

// Style is the bitset accepted by the printer's "set print mode" command.
type Style byte

const (
	StyleReverse      Style = 1 << 1
	StyleUpdown       Style = 1 << 2
	StyleBold         Style = 1 << 3
	StyleDoubleHeight Style = 1 << 4
	StyleDoubleWidth  Style = 1 << 5
	StyleDeleteLine   Style = 1 << 6

	// StyleBig is the usual "large receipt header" combination.
	StyleBig = StyleDoubleHeight | StyleDoubleWidth
)

// Alignment selects the horizontal placement of subsequent lines.
type Alignment byte

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Rule character and width limit of the 384-dot head at normal font size.
const (
	ruleChar   = 0xC4 // box-drawing horizontal in IBM437/IBM850
	maxColumns = 32
)

// EncodeText converts a line of text to printable codepage bytes. Leading
// and trailing newline and carriage-return characters are dropped; the
// session appends its own feed bytes.
func EncodeText(text string, cs Charset) ([]byte, error) {
	return recode(strings.Trim(text, "\r\n"), cs)
}

// StyleOn emits the "set print mode" command for the given style bits.
func StyleOn(s Style) []byte {
	return command(Commands.PrintMode, byte(s))
}

// StyleOff restores the normal print mode. Every StyleOn write must be
// paired with one of these, including on error paths.
func StyleOff() []byte {
	return command(Commands.PrintMode, 0x00)
}

// Align emits the alignment command. Values outside the known range fall
// back to left alignment.
func Align(a Alignment) []byte {
	switch a {
	case AlignCenter:
		return Commands.AlignCenter
	case AlignRight:
		return Commands.AlignRight
	default:
		return Commands.AlignLeft
	}
}

// Indent emits the left-indent command. Columns outside 0..31 clamp to 0.
func Indent(columns int) []byte {
	if columns < 0 || columns > 31 {
		columns = 0
	}
	return command(Commands.Indent, byte(columns))
}

// LineSpacing emits the line-spacing command, in dots.
func LineSpacing(dots byte) []byte {
	return command(Commands.LineSpacing, dots)
}

// FeedLines emits the multi-line paper feed command.
func FeedLines(lines byte) []byte {
	return command(Commands.FeedLines, lines)
}

// HorizontalRule emits length rule characters followed by a line feed.
// Length clamps to the 32-column head width.
func HorizontalRule(length int) []byte {
	if length < 0 {
		length = 0
	}
	if length > maxColumns {
		length = maxColumns
	}

	out := make([]byte, length+1)
	for i := 0; i < length; i++ {
		out[i] = ruleChar
	}
	out[length] = Commands.LineFeed[0]
	return out
}

// BarcodeWidth emits the barcode module width command.
func BarcodeWidth(large bool) []byte {
	if large {
		return Commands.BarcodeWidthLarge
	}
	return Commands.BarcodeWidthNormal
}

// BarcodeLeftSpace emits the barcode left margin command, in dots.
func BarcodeLeftSpace(dots byte) []byte {
	return command(Commands.BarcodeLeftSpace, dots)
}

// Heating emits the control parameter command for the thermal head.
// maxDots is in units of 8 dots; heatingTime and heatingInterval are in
// units of 10us. More time means darker but slower printing.
func Heating(maxDots, heatingTime, heatingInterval byte) []byte {
	return command(Commands.Heating, maxDots, heatingTime, heatingInterval)
}
