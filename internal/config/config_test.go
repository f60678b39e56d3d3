// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

// chdir changes the working directory for the duration of the test.
// It stands in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Port)
	assert.Equal(t, 19200, cfg.Serial.BaudRate)
	assert.Equal(t, 8, cfg.Serial.DataBits)
	assert.Equal(t, 1, cfg.Serial.StopBits)
	assert.Equal(t, "none", cfg.Serial.Parity)
	assert.Equal(t, 5*time.Second, cfg.Serial.Timeout)

	assert.Equal(t, 7, cfg.Printer.MaxPrintingDots)
	assert.Equal(t, 80, cfg.Printer.HeatingTime)
	assert.Equal(t, 2, cfg.Printer.HeatingInterval)
	assert.Equal(t, "IBM850", cfg.Printer.Encoding)
	assert.Equal(t, 20*time.Millisecond, cfg.Printer.PictureLineDelay)
	assert.Equal(t, time.Duration(0), cfg.Printer.TextLineDelay)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "thermalctl", cfg.App.Name)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	resetViper(t)
	chdir(t, t.TempDir())
	t.Setenv("THERMALCTL_SERIAL_PORT", "/dev/ttyAMA0")
	t.Setenv("THERMALCTL_SERIAL_BAUD_RATE", "9600")
	t.Setenv("THERMALCTL_PRINTER_ENCODING", "IBM437")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyAMA0", cfg.Serial.Port)
	assert.Equal(t, 9600, cfg.Serial.BaudRate)
	assert.Equal(t, "IBM437", cfg.Printer.Encoding)
}

func TestLoadConfigFile(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	content := []byte(`
serial:
  port: /dev/ttyS3
  baud_rate: 115200
printer:
  heating_time: 120
  picture_line_delay: 40ms
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyS3", cfg.Serial.Port)
	assert.Equal(t, 115200, cfg.Serial.BaudRate)
	assert.Equal(t, 120, cfg.Printer.HeatingTime)
	assert.Equal(t, 40*time.Millisecond, cfg.Printer.PictureLineDelay)
	// Untouched keys keep their defaults.
	assert.Equal(t, 7, cfg.Printer.MaxPrintingDots)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad parity", "THERMALCTL_SERIAL_PARITY", "mark"},
		{"bad encoding", "THERMALCTL_PRINTER_ENCODING", "LATIN1"},
		{"heating time too large", "THERMALCTL_PRINTER_HEATING_TIME", "300"},
		{"negative heating interval", "THERMALCTL_PRINTER_HEATING_INTERVAL", "-1"},
		{"bad log level", "THERMALCTL_LOGGING_LEVEL", "verbose"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resetViper(t)
			chdir(t, t.TempDir())
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
