// internal/escpos/codec_test.go
package escpos

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTextTrimsLineBreaks(t *testing.T) {
	out, err := EncodeText("\r\nHELLO\n\r", CharsetIBM437)
	require.NoError(t, err)
	assert.Equal(t, []byte("HELLO"), out)
}

func TestEncodeTextRecodesAccents(t *testing.T) {
	// 0x82 is e-acute in both IBM437 and IBM850.
	for _, cs := range []Charset{CharsetIBM437, CharsetIBM850} {
		out, err := EncodeText("café", cs)
		require.NoError(t, err, "charset %s", cs)
		assert.Equal(t, []byte{'c', 'a', 'f', 0x82}, out)
	}
}

func TestEncodeTextStrictPolicy(t *testing.T) {
	testCases := []struct {
		name    string
		text    string
		charset Charset
		wantErr bool
	}{
		{"euro sign has no codepage mapping", "1€", CharsetIBM437, true},
		{"A-tilde only exists in IBM850", "SÃO", CharsetIBM437, true},
		{"A-tilde in IBM850", "SÃO", CharsetIBM850, false},
		{"plain ascii", "RECEIPT", CharsetIBM437, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := EncodeText(tc.text, tc.charset)
			if tc.wantErr {
				var encErr *EncodingError
				require.ErrorAs(t, err, &encErr)
				assert.Equal(t, tc.charset, encErr.Charset)
				assert.Nil(t, out)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestStyleCommands(t *testing.T) {
	assert.Equal(t, []byte{0x1B, 0x21, 0x08}, StyleOn(StyleBold))
	assert.Equal(t, []byte{0x1B, 0x21, 0x30}, StyleOn(StyleBig))
	assert.Equal(t, []byte{0x1B, 0x21, 0x02}, StyleOn(StyleReverse))
	assert.Equal(t, []byte{0x1B, 0x21, 0x00}, StyleOff())
}

func TestAlign(t *testing.T) {
	assert.Equal(t, []byte{0x1B, 0x61, 0x00}, Align(AlignLeft))
	assert.Equal(t, []byte{0x1B, 0x61, 0x01}, Align(AlignCenter))
	assert.Equal(t, []byte{0x1B, 0x61, 0x02}, Align(AlignRight))
}

func TestIndentClampsToZero(t *testing.T) {
	testCases := []struct {
		columns int
		want    byte
	}{
		{0, 0},
		{17, 17},
		{31, 31},
		{32, 0},
		{50, 0},
		{-1, 0},
	}

	for _, tc := range testCases {
		assert.Equal(t, []byte{0x1B, 0x42, tc.want}, Indent(tc.columns), "columns=%d", tc.columns)
	}
}

func TestHorizontalRuleClampsToHeadWidth(t *testing.T) {
	out := HorizontalRule(40)
	require.Len(t, out, 33)
	assert.Equal(t, bytes.Repeat([]byte{0xC4}, 32), out[:32])
	assert.Equal(t, byte(0x0A), out[32])

	short := HorizontalRule(5)
	require.Len(t, short, 6)
	assert.Equal(t, bytes.Repeat([]byte{0xC4}, 5), short[:5])
}

func TestHeating(t *testing.T) {
	assert.Equal(t, []byte{0x1B, 0x37, 7, 80, 2}, Heating(7, 80, 2))
}

func TestFeedLines(t *testing.T) {
	assert.Equal(t, []byte{0x1B, 0x64, 3}, FeedLines(3))
}

func TestLineSpacing(t *testing.T) {
	assert.Equal(t, []byte{0x1B, 0x33, 32}, LineSpacing(32))
}

func TestBarcodeWidth(t *testing.T) {
	assert.Equal(t, []byte{0x1D, 0x77, 0x03}, BarcodeWidth(true))
	assert.Equal(t, []byte{0x1D, 0x77, 0x02}, BarcodeWidth(false))
}

func TestBarcodeLeftSpace(t *testing.T) {
	assert.Equal(t, []byte{0x1D, 0x78, 10}, BarcodeLeftSpace(10))
}

func TestSelectCommand(t *testing.T) {
	cmd, err := CharsetIBM437.SelectCommand()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1B, 0x74, 0x00}, cmd)

	cmd, err = CharsetIBM850.SelectCommand()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1B, 0x74, 0x02}, cmd)

	_, err = Charset("LATIN1").SelectCommand()
	assert.Error(t, err)
}

func TestCommandDoesNotMutatePrefixes(t *testing.T) {
	before := append([]byte{}, Commands.Indent...)
	_ = Indent(5)
	_ = Indent(9)
	assert.Equal(t, before, Commands.Indent)
}
