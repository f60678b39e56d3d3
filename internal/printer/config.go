// internal/printer/config.go
package printer

import (
	"fmt"
	"time"

	"thermal-printer/internal/config"
	"thermal-printer/internal/escpos"
)

// Config holds the session's adjustable parameters. It lives for the
// session's lifetime and changes only through explicit calls
// (SetPrintingParameters, SetTextEncoding).
type Config struct {
	MaxPrintingDots  byte
	HeatingTime      byte
	HeatingInterval  byte
	Encoding         escpos.Charset
	PictureLineDelay time.Duration
	TextLineDelay    time.Duration
}

// DefaultConfig returns the firmware defaults: 7 heating dot groups,
// 800us heating time, 20us heating interval, IBM850 text, 20ms raster
// row settle, no extra text line settle.
func DefaultConfig() Config {
	return Config{
		MaxPrintingDots:  7,
		HeatingTime:      80,
		HeatingInterval:  2,
		Encoding:         escpos.CharsetIBM850,
		PictureLineDelay: 20 * time.Millisecond,
		TextLineDelay:    0,
	}
}

// ConfigFromSettings builds a session Config from application settings.
func ConfigFromSettings(cfg *config.PrinterConfig) (Config, error) {
	cs := escpos.Charset(cfg.Encoding)
	if _, err := cs.SelectCommand(); err != nil {
		return Config{}, fmt.Errorf("invalid printer encoding: %w", err)
	}

	return Config{
		MaxPrintingDots:  byte(cfg.MaxPrintingDots),
		HeatingTime:      byte(cfg.HeatingTime),
		HeatingInterval:  byte(cfg.HeatingInterval),
		Encoding:         cs,
		PictureLineDelay: cfg.PictureLineDelay,
		TextLineDelay:    cfg.TextLineDelay,
	}, nil
}
