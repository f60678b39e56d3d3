// cmd/thermalctl/main.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"thermal-printer/internal/config"
	"thermal-printer/internal/escpos"
	"thermal-printer/internal/imaging"
	"thermal-printer/internal/printer"
	"thermal-printer/internal/transport"
	"thermal-printer/internal/transport/serial"
	"thermal-printer/internal/utils"
)

// jobFlags describes one print job, built from the command line. The host
// stays a thin wrapper: every flag maps onto a single session operation.
type jobFlags struct {
	text      string
	textFile  string
	imagePath string
	barcode   string
	symbology string
	align     string
	indent    int
	rule      int
	feed      int

	bold         bool
	inverted     bool
	big          bool
	largeBarcode bool
	sleepAfter   bool
}

// Application represents the host program
type Application struct {
	config    *config.Config
	logger    *zap.Logger
	transport transport.Transport
	session   *printer.Session
}

func main() {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid arguments: %v\n", err)
		os.Exit(2)
	}

	app, err := NewApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer app.shutdown()

	if err := app.runJob(context.Background(), flags); err != nil {
		app.logger.Error("Print job failed", zap.Error(err))
		os.Exit(1)
	}
}

// parseFlags parses the command line and binds the connection overrides
// into viper so they take precedence over file and environment settings.
func parseFlags(args []string) (*jobFlags, error) {
	flags := &jobFlags{}
	fs := pflag.NewFlagSet("thermalctl", pflag.ContinueOnError)

	fs.String("port", "", "serial port device (overrides config)")
	fs.Int("baud", 0, "serial baud rate (overrides config)")
	fs.String("encoding", "", "text codepage, IBM437 or IBM850 (overrides config)")

	fs.StringVar(&flags.text, "text", "", "print one line of text")
	fs.StringVar(&flags.textFile, "text-file", "", "print each line of a file")
	fs.StringVar(&flags.imagePath, "image", "", "print an image file (PNG, JPEG or BMP)")
	fs.StringVar(&flags.barcode, "barcode", "", "print a barcode payload")
	fs.StringVar(&flags.symbology, "symbology", "code128", "barcode symbology")
	fs.StringVar(&flags.align, "align", "left", "alignment: left, center or right")
	fs.IntVar(&flags.indent, "indent", 0, "left indent in columns (0..31)")
	fs.IntVar(&flags.rule, "rule", 0, "print a horizontal rule of this length first")
	fs.IntVar(&flags.feed, "feed", 0, "feed this many blank lines afterwards")

	fs.BoolVar(&flags.bold, "bold", false, "print text bold")
	fs.BoolVar(&flags.inverted, "inverted", false, "print text white on black")
	fs.BoolVar(&flags.big, "big", false, "print text double height and width")
	fs.BoolVar(&flags.largeBarcode, "large-barcode", false, "use large barcode module width")
	fs.BoolVar(&flags.sleepAfter, "sleep-after", false, "put the printer to sleep when done")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	for viperKey, flagName := range map[string]string{
		"serial.port":      "port",
		"serial.baud_rate": "baud",
		"printer.encoding": "encoding",
	} {
		f := fs.Lookup(flagName)
		if f.Changed {
			if err := viper.BindPFlag(viperKey, f); err != nil {
				return nil, err
			}
		}
	}

	return flags, nil
}

// NewApplication loads configuration, builds the logger and opens the
// serial transport.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := utils.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	jobID := uuid.New().String()
	logger = logger.With(zap.String("job_id", jobID))

	app := &Application{
		config: cfg,
		logger: logger,
	}

	if err := app.initializeSession(); err != nil {
		return nil, fmt.Errorf("failed to initialize printer session: %w", err)
	}

	return app, nil
}

// initializeSession opens the serial port and wires up the session.
func (app *Application) initializeSession() error {
	conn, err := serial.NewConnection(&serial.Config{
		Port:     app.config.Serial.Port,
		BaudRate: app.config.Serial.BaudRate,
		DataBits: app.config.Serial.DataBits,
		StopBits: app.config.Serial.StopBits,
		Parity:   app.config.Serial.Parity,
		Timeout:  app.config.Serial.Timeout,
	}, app.logger)
	if err != nil {
		return err
	}

	if err := conn.Open(context.Background()); err != nil {
		return err
	}
	app.transport = conn

	sessionConfig, err := printer.ConfigFromSettings(&app.config.Printer)
	if err != nil {
		conn.Close()
		return err
	}

	printerLogger := utils.NewPrinterLogger(app.logger, app.config.Serial.Port)
	app.session = printer.NewSession(conn, sessionConfig, printerLogger)

	app.logger.Info("Printer session initialized",
		zap.String("port", app.config.Serial.Port),
		zap.Int("baud_rate", app.config.Serial.BaudRate),
		zap.String("encoding", app.config.Printer.Encoding),
	)
	return nil
}

// runJob executes the requested operations in a fixed, printer-friendly
// order: reset and tuning first, layout next, then content, then feed.
func (app *Application) runJob(ctx context.Context, flags *jobFlags) error {
	s := app.session

	if err := s.Reset(ctx); err != nil {
		return err
	}
	if err := s.SetPrintingParameters(ctx,
		byte(app.config.Printer.MaxPrintingDots),
		byte(app.config.Printer.HeatingTime),
		byte(app.config.Printer.HeatingInterval),
	); err != nil {
		return err
	}

	align, err := parseAlignment(flags.align)
	if err != nil {
		return err
	}
	if err := s.SetAlignment(ctx, align); err != nil {
		return err
	}
	if flags.indent > 0 {
		if err := s.SetIndent(ctx, flags.indent); err != nil {
			return err
		}
	}
	if flags.rule > 0 {
		if err := s.HorizontalRule(ctx, flags.rule); err != nil {
			return err
		}
	}

	if flags.text != "" {
		if err := s.WriteLineStyled(ctx, flags.text, app.textStyle(flags)); err != nil {
			return err
		}
	}
	if flags.textFile != "" {
		if err := app.printTextFile(ctx, flags); err != nil {
			return err
		}
	}
	if flags.imagePath != "" {
		if err := app.printImageFile(ctx, flags.imagePath); err != nil {
			return err
		}
	}
	if flags.barcode != "" {
		if err := app.printBarcode(ctx, flags); err != nil {
			return err
		}
	}

	if flags.feed > 0 {
		if err := s.FeedLines(ctx, byte(flags.feed)); err != nil {
			return err
		}
	}
	if flags.sleepAfter {
		if err := s.SleepMode(ctx); err != nil {
			return err
		}
	}

	app.logger.Info("Print job completed")
	return nil
}

func (app *Application) textStyle(flags *jobFlags) escpos.Style {
	var style escpos.Style
	if flags.bold {
		style |= escpos.StyleBold
	}
	if flags.inverted {
		style |= escpos.StyleReverse
	}
	if flags.big {
		style |= escpos.StyleBig
	}
	return style
}

func (app *Application) printTextFile(ctx context.Context, flags *jobFlags) error {
	f, err := os.Open(flags.textFile)
	if err != nil {
		return fmt.Errorf("failed to open text file: %w", err)
	}
	defer f.Close()

	style := app.textStyle(flags)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := app.session.WriteLineStyled(ctx, scanner.Text(), style); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (app *Application) printImageFile(ctx context.Context, path string) error {
	img, err := imaging.Load(path)
	if err != nil {
		return err
	}

	grid := imaging.Rasterize(img, escpos.RasterWidth)
	app.logger.Info("Image rasterized",
		zap.String("path", path),
		zap.Int("height", grid.Height()),
	)

	return app.session.PrintImage(ctx, grid)
}

func (app *Application) printBarcode(ctx context.Context, flags *jobFlags) error {
	symbology, err := escpos.ParseSymbology(flags.symbology)
	if err != nil {
		return err
	}

	if flags.largeBarcode {
		if err := app.session.SetLargeBarcode(ctx, true); err != nil {
			return err
		}
	}

	return app.session.PrintBarcode(ctx, escpos.Barcode{
		Symbology: symbology,
		Payload:   []byte(flags.barcode),
	})
}

func parseAlignment(name string) (escpos.Alignment, error) {
	switch name {
	case "left":
		return escpos.AlignLeft, nil
	case "center":
		return escpos.AlignCenter, nil
	case "right":
		return escpos.AlignRight, nil
	default:
		return 0, fmt.Errorf("invalid alignment: %q", name)
	}
}

// shutdown closes the transport and flushes the logger.
func (app *Application) shutdown() {
	if app.transport != nil {
		if err := app.transport.Close(); err != nil {
			app.logger.Error("Failed to close transport", zap.Error(err))
		}
	}
	if err := utils.CloseLogger(app.logger); err != nil {
		fmt.Fprintf(os.Stderr, "Logger close error: %v\n", err)
	}
}
