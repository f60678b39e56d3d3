// internal/escpos/barcode.go
package escpos

import (
	"errors"
	"fmt"
	"strings"
)

// Symbology identifies a barcode standard by its firmware id byte.
type Symbology byte

const (
	SymbologyUPCA Symbology = iota
	SymbologyUPCE
	SymbologyEAN13
	SymbologyEAN8
	SymbologyCode39
	SymbologyI25
	SymbologyCodabar
	SymbologyCode93
	SymbologyCode128
	SymbologyCode11
	SymbologyMSI
)

// ErrInvalidBarcodeSpec reports a payload that violates the symbology's
// length rules. Nothing is sent to the printer in that case; dropping the
// request silently would lose data without any signal to the caller.
var ErrInvalidBarcodeSpec = errors.New("barcode payload violates symbology constraints")

// Barcode couples a symbology with its payload bytes.
type Barcode struct {
	Symbology Symbology
	Payload   []byte
}

var symbologyNames = map[string]Symbology{
	"upc-a":   SymbologyUPCA,
	"upc-e":   SymbologyUPCE,
	"ean13":   SymbologyEAN13,
	"ean8":    SymbologyEAN8,
	"code39":  SymbologyCode39,
	"i25":     SymbologyI25,
	"codabar": SymbologyCodabar,
	"code93":  SymbologyCode93,
	"code128": SymbologyCode128,
	"code11":  SymbologyCode11,
	"msi":     SymbologyMSI,
}

// ParseSymbology maps a configuration name like "ean13" to its id.
func ParseSymbology(name string) (Symbology, error) {
	s, ok := symbologyNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown barcode symbology: %q", name)
	}
	return s, nil
}

// raw reports whether payload bytes bypass upper-casing and codepage
// recoding. Code93 and Code128 carry their full byte range on the wire.
func (s Symbology) raw() bool {
	return s == SymbologyCode93 || s == SymbologyCode128
}

func (s Symbology) validLength(n int) bool {
	switch s {
	case SymbologyUPCA, SymbologyUPCE:
		return n == 11 || n == 12
	case SymbologyEAN13:
		return n == 12 || n == 13
	case SymbologyEAN8:
		return n == 7 || n == 8
	case SymbologyCode39, SymbologyI25, SymbologyCodabar,
		SymbologyCode93, SymbologyCode128, SymbologyCode11, SymbologyMSI:
		return n > 1
	default:
		return false
	}
}

// EncodeBarcode validates the spec and emits the barcode print command:
// GS k, symbology id, payload, NUL terminator. On validation or recoding
// failure no bytes are produced.
func EncodeBarcode(bc Barcode, cs Charset) ([]byte, error) {
	if !bc.Symbology.validLength(len(bc.Payload)) {
		return nil, fmt.Errorf("%w: symbology %d, payload length %d",
			ErrInvalidBarcodeSpec, bc.Symbology, len(bc.Payload))
	}

	payload := bc.Payload
	if !bc.Symbology.raw() {
		recoded, err := recode(strings.ToUpper(string(bc.Payload)), cs)
		if err != nil {
			return nil, err
		}
		payload = recoded
	}

	out := command(Commands.BarcodePrint, byte(bc.Symbology))
	out = append(out, payload...)
	return append(out, 0x00), nil
}
