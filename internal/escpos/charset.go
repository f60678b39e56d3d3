// internal/escpos/charset.go
package escpos

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// Charset identifies a single-byte codepage the printer can render.
type Charset string

const (
	CharsetIBM437 Charset = "IBM437"
	CharsetIBM850 Charset = "IBM850"
)

// EncodingError reports a rune with no representation in the target
// codepage. Conversion is strict: nothing is sent to the printer when the
// text cannot be rendered exactly.
type EncodingError struct {
	Rune    rune
	Charset Charset
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("rune %q has no %s representation", e.Rune, e.Charset)
}

func (c Charset) charmap() (*charmap.Charmap, error) {
	switch c {
	case CharsetIBM437:
		return charmap.CodePage437, nil
	case CharsetIBM850:
		return charmap.CodePage850, nil
	default:
		return nil, fmt.Errorf("unsupported charset: %q", c)
	}
}

// SelectCommand returns the codepage select command matching c, so the
// printer-side glyph table follows the host-side conversion.
func (c Charset) SelectCommand() ([]byte, error) {
	switch c {
	case CharsetIBM437:
		return Commands.SelectCharsetIBM437, nil
	case CharsetIBM850:
		return Commands.SelectCharsetIBM850, nil
	default:
		return nil, fmt.Errorf("unsupported charset: %q", c)
	}
}

// recode converts UTF-8 text to the single-byte codepage, one rune at a
// time. No trimming, no substitution.
func recode(text string, cs Charset) ([]byte, error) {
	cm, err := cs.charmap()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(text))
	for _, r := range text {
		b, ok := cm.EncodeRune(r)
		if !ok {
			return nil, &EncodingError{Rune: r, Charset: cs}
		}
		out = append(out, b)
	}
	return out, nil
}
