// internal/printer/session.go
package printer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"thermal-printer/internal/escpos"
	"thermal-printer/internal/transport"
	"thermal-printer/internal/utils"
)

// resetSettle is the hardware reinitialization delay after a reset byte
// sequence. Writing earlier than this corrupts the first printed line.
const resetSettle = 50 * time.Millisecond

// wakeSettle gives the head a moment to power up after the wake byte.
const wakeSettle = 50 * time.Millisecond

// Session drives one printer over one exclusively-owned transport. All
// operations are synchronous: the transport write and any mandated settle
// delay complete before the call returns. Callers needing concurrency must
// serialize externally; the session does no locking of its own.
type Session struct {
	config    Config
	transport transport.Transport
	logger    *utils.PrinterLogger
	clock     Clock
}

// NewSession creates a session over an already-opened transport.
func NewSession(t transport.Transport, cfg Config, logger *utils.PrinterLogger) *Session {
	return &Session{
		config:    cfg,
		transport: t,
		logger:    logger,
		clock:     systemClock{},
	}
}

// Config returns a copy of the current session configuration.
func (s *Session) Config() Config {
	return s.config
}

// Reset reinitializes the printer and blocks for the mandatory settle
// time before returning control.
func (s *Session) Reset(ctx context.Context) error {
	start := time.Now()
	err := s.transport.Write(ctx, escpos.Commands.Reset)
	if err == nil {
		s.clock.Sleep(resetSettle)
	}
	s.logger.LogOperation("reset", time.Since(start), err)
	return err
}

// WriteLine prints one line of text in normal mode, followed by a feed.
func (s *Session) WriteLine(ctx context.Context, text string) error {
	return s.writeStyled(ctx, text, 0, true)
}

// WriteLineBuffered prints text without a trailing feed, leaving the line
// in the printer's buffer until the next feed byte arrives.
func (s *Session) WriteLineBuffered(ctx context.Context, text string) error {
	return s.writeStyled(ctx, text, 0, false)
}

// WriteLineStyled prints one line with the given style bits, followed by
// a feed. The style applies to this line only.
func (s *Session) WriteLineStyled(ctx context.Context, text string, style escpos.Style) error {
	return s.writeStyled(ctx, text, style, true)
}

// WriteLineBold prints one bold line.
func (s *Session) WriteLineBold(ctx context.Context, text string) error {
	return s.WriteLineStyled(ctx, text, escpos.StyleBold)
}

// WriteLineInverted prints one white-on-black line.
func (s *Session) WriteLineInverted(ctx context.Context, text string) error {
	return s.WriteLineStyled(ctx, text, escpos.StyleReverse)
}

// WriteLineBig prints one double-height, double-width line.
func (s *Session) WriteLineBig(ctx context.Context, text string) error {
	return s.WriteLineStyled(ctx, text, escpos.StyleBig)
}

// writeStyled emits style-on, the recoded text, style-off and optionally a
// feed byte, then honors the configured inter-line delay. Style-off is
// transmitted even when text encoding fails after style-on already went
// out, so the head is never left in a modified mode.
func (s *Session) writeStyled(ctx context.Context, text string, style escpos.Style, feed bool) error {
	start := time.Now()
	err := s.writeStyledBody(ctx, text, style, feed)
	if err == nil {
		s.clock.Sleep(s.config.TextLineDelay)
	}
	s.logger.LogOperation("write_line", time.Since(start), err)
	return err
}

func (s *Session) writeStyledBody(ctx context.Context, text string, style escpos.Style, feed bool) error {
	if err := s.transport.Write(ctx, escpos.StyleOn(style)); err != nil {
		return fmt.Errorf("style on: %w", err)
	}

	body, err := escpos.EncodeText(text, s.config.Encoding)
	if err != nil {
		if offErr := s.transport.Write(ctx, escpos.StyleOff()); offErr != nil {
			s.logger.Warn("Failed to restore print mode after encoding failure",
				zap.Error(offErr),
			)
		}
		return err
	}

	if err := s.transport.Write(ctx, body); err != nil {
		return fmt.Errorf("text body: %w", err)
	}
	if err := s.transport.Write(ctx, escpos.StyleOff()); err != nil {
		return fmt.Errorf("style off: %w", err)
	}

	if feed {
		if err := s.transport.Write(ctx, escpos.Commands.LineFeed); err != nil {
			return fmt.Errorf("line feed: %w", err)
		}
	}
	return nil
}

// SetAlignment selects left, center or right alignment for subsequent lines.
func (s *Session) SetAlignment(ctx context.Context, a escpos.Alignment) error {
	return s.write(ctx, "set_alignment", escpos.Align(a))
}

// SetIndent sets the left indent in character columns, 0..31. Values
// outside the range clamp to 0.
func (s *Session) SetIndent(ctx context.Context, columns int) error {
	return s.write(ctx, "set_indent", escpos.Indent(columns))
}

// SetLineSpacing sets the line spacing in dots.
func (s *Session) SetLineSpacing(ctx context.Context, dots byte) error {
	return s.write(ctx, "set_line_spacing", escpos.LineSpacing(dots))
}

// FeedLines advances the paper by the given number of blank lines.
func (s *Session) FeedLines(ctx context.Context, lines byte) error {
	return s.write(ctx, "feed_lines", escpos.FeedLines(lines))
}

// HorizontalRule prints a horizontal line of up to 32 rule characters.
func (s *Session) HorizontalRule(ctx context.Context, length int) error {
	return s.write(ctx, "horizontal_rule", escpos.HorizontalRule(length))
}

// PrintBarcode validates, encodes and prints a barcode. Invalid specs
// surface an error before any byte reaches the printer.
func (s *Session) PrintBarcode(ctx context.Context, bc escpos.Barcode) error {
	start := time.Now()
	data, err := escpos.EncodeBarcode(bc, s.config.Encoding)
	if err == nil {
		err = s.transport.Write(ctx, data)
	}
	s.logger.LogOperation("print_barcode", time.Since(start), err)
	return err
}

// SetLargeBarcode switches between normal and large barcode module width.
func (s *Session) SetLargeBarcode(ctx context.Context, large bool) error {
	return s.write(ctx, "set_barcode_width", escpos.BarcodeWidth(large))
}

// SetBarcodeLeftSpacing sets the barcode left margin in dots.
func (s *Session) SetBarcodeLeftSpacing(ctx context.Context, dots byte) error {
	return s.write(ctx, "set_barcode_left_spacing", escpos.BarcodeLeftSpace(dots))
}

// PrintImage rasterizes the image through the printer's raster command.
// The header goes out once; each of the height x 48-byte rows is written
// separately with the configured settle delay in between, because the
// printer's buffer cannot absorb a full image at line speed.
func (s *Session) PrintImage(ctx context.Context, img escpos.RasterSource) error {
	start := time.Now()
	err := s.printImage(ctx, img)
	s.logger.LogOperation("print_image", time.Since(start), err)
	return err
}

func (s *Session) printImage(ctx context.Context, img escpos.RasterSource) error {
	header, err := escpos.RasterHeader(img)
	if err != nil {
		return err
	}
	if err := s.transport.Write(ctx, header); err != nil {
		return fmt.Errorf("raster header: %w", err)
	}

	for y := 0; y < img.Height(); y++ {
		if err := s.transport.Write(ctx, escpos.PackRasterRow(img, y)); err != nil {
			return fmt.Errorf("raster row %d: %w", y, err)
		}
		s.clock.Sleep(s.config.PictureLineDelay)
	}
	return nil
}

// SetPrintingParameters tunes the thermal head and transmits the control
// parameter command. A zero keeps the previous value for that field.
func (s *Session) SetPrintingParameters(ctx context.Context, maxDots, heatingTime, heatingInterval byte) error {
	if maxDots == 0 {
		maxDots = s.config.MaxPrintingDots
	}
	if heatingTime == 0 {
		heatingTime = s.config.HeatingTime
	}
	if heatingInterval == 0 {
		heatingInterval = s.config.HeatingInterval
	}

	err := s.write(ctx, "set_printing_parameters", escpos.Heating(maxDots, heatingTime, heatingInterval))
	if err != nil {
		return err
	}

	s.config.MaxPrintingDots = maxDots
	s.config.HeatingTime = heatingTime
	s.config.HeatingInterval = heatingInterval
	return nil
}

// SetTextEncoding switches the active codepage, both host-side conversion
// and the printer's glyph table.
func (s *Session) SetTextEncoding(ctx context.Context, cs escpos.Charset) error {
	cmd, err := cs.SelectCommand()
	if err != nil {
		return err
	}
	if err := s.write(ctx, "set_text_encoding", cmd); err != nil {
		return err
	}
	s.config.Encoding = cs
	return nil
}

// SleepMode puts the printer into its low-power state.
func (s *Session) SleepMode(ctx context.Context) error {
	return s.write(ctx, "sleep", escpos.Commands.SleepMode)
}

// WakeUp brings the printer back from low power and waits for the head to
// come up before further writes.
func (s *Session) WakeUp(ctx context.Context) error {
	start := time.Now()
	err := s.transport.Write(ctx, escpos.Commands.Wake)
	if err == nil {
		s.clock.Sleep(wakeSettle)
	}
	s.logger.LogOperation("wake_up", time.Since(start), err)
	return err
}

// write sends one fully-formed command sequence and logs the outcome.
func (s *Session) write(ctx context.Context, operation string, data []byte) error {
	start := time.Now()
	err := s.transport.Write(ctx, data)
	s.logger.LogOperation(operation, time.Since(start), err)
	return err
}
