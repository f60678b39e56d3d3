// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Serial  SerialConfig  `mapstructure:"serial"`
	Printer PrinterConfig `mapstructure:"printer"`
	Logging LoggingConfig `mapstructure:"logging"`
	App     AppConfig     `mapstructure:"app"`
}

// SerialConfig represents serial port configuration
type SerialConfig struct {
	Port     string        `mapstructure:"port" validate:"required"`
	BaudRate int           `mapstructure:"baud_rate"`
	DataBits int           `mapstructure:"data_bits"`
	StopBits int           `mapstructure:"stop_bits"`
	Parity   string        `mapstructure:"parity"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// PrinterConfig represents printer tuning parameters. Heating values are
// raw firmware bytes (see the control parameter command); the delays are
// settle times the session honors between writes.
type PrinterConfig struct {
	MaxPrintingDots  int           `mapstructure:"max_printing_dots"`
	HeatingTime      int           `mapstructure:"heating_time"`
	HeatingInterval  int           `mapstructure:"heating_interval"`
	Encoding         string        `mapstructure:"encoding"`
	PictureLineDelay time.Duration `mapstructure:"picture_line_delay"`
	TextLineDelay    time.Duration `mapstructure:"text_line_delay"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level" validate:"required"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// AppConfig represents application metadata
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Debug   bool   `mapstructure:"debug"`
}

// Load loads configuration from file and environment variables. A missing
// config file is fine; defaults plus environment cover the common case of
// a printer on a well-known port.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.thermalctl")

	// Environment variable support
	viper.SetEnvPrefix("THERMALCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Serial defaults. 19200 8N1 is what these heads ship with.
	viper.SetDefault("serial.port", "/dev/ttyUSB0")
	viper.SetDefault("serial.baud_rate", 19200)
	viper.SetDefault("serial.data_bits", 8)
	viper.SetDefault("serial.stop_bits", 1)
	viper.SetDefault("serial.parity", "none")
	viper.SetDefault("serial.timeout", "5s")

	// Printer defaults
	viper.SetDefault("printer.max_printing_dots", 7)
	viper.SetDefault("printer.heating_time", 80)
	viper.SetDefault("printer.heating_interval", 2)
	viper.SetDefault("printer.encoding", "IBM850")
	viper.SetDefault("printer.picture_line_delay", "20ms")
	viper.SetDefault("printer.text_line_delay", "0s")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("logging.output", "stderr")
	viper.SetDefault("logging.max_size", 100)
	viper.SetDefault("logging.max_backups", 3)
	viper.SetDefault("logging.max_age", 28)
	viper.SetDefault("logging.compress", true)

	// App defaults
	viper.SetDefault("app.name", "thermalctl")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.debug", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Serial.Port == "" {
		return fmt.Errorf("serial.port is required")
	}
	if config.Serial.BaudRate <= 0 {
		return fmt.Errorf("serial.baud_rate must be positive")
	}

	validParities := []string{"none", "odd", "even"}
	isValidParity := false
	for _, p := range validParities {
		if config.Serial.Parity == p {
			isValidParity = true
			break
		}
	}
	if !isValidParity {
		return fmt.Errorf("serial.parity must be one of: %v", validParities)
	}

	validEncodings := []string{"IBM437", "IBM850"}
	isValidEncoding := false
	for _, enc := range validEncodings {
		if config.Printer.Encoding == enc {
			isValidEncoding = true
			break
		}
	}
	if !isValidEncoding {
		return fmt.Errorf("printer.encoding must be one of: %v", validEncodings)
	}

	for name, v := range map[string]int{
		"printer.max_printing_dots": config.Printer.MaxPrintingDots,
		"printer.heating_time":      config.Printer.HeatingTime,
		"printer.heating_interval":  config.Printer.HeatingInterval,
	} {
		if v < 0 || v > 255 {
			return fmt.Errorf("%s must fit in a byte, got %d", name, v)
		}
	}

	validLevels := []string{"debug", "info", "warn", "error", "fatal"}
	isValidLevel := false
	for _, level := range validLevels {
		if config.Logging.Level == level {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		return fmt.Errorf("logging.level must be one of: %v", validLevels)
	}

	return nil
}
