package transport

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"
)

// Config provides options to open a transport.
type Config struct {
	// Device is a serial device name (e.g. /dev/ttyUSB0, COM15) or a
	// ws:// URL. Empty selects the OS default serial device.
	Device string
	// BaudRate applies to serial devices only.
	BaudRate int
	// ReadTimeout bounds a single blocking read on serial devices.
	// A timed out read yields zero bytes and is not an error.
	ReadTimeout time.Duration
}

var defaultConfig = Config{
	BaudRate:    115200,
	ReadTimeout: time.Second,
}

func init() {
	if val := os.Getenv("DRIVELINK_DEVICE"); val != "" {
		defaultConfig.Device = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Device, "device", defaultConfig.Device, "Serial device or ws:// URL, empty for OS default.")
	flag.IntVar(&defaultConfig.BaudRate, "baud", defaultConfig.BaudRate, "Serial baud rate.")
	flag.DurationVar(&defaultConfig.ReadTimeout, "read-timeout", defaultConfig.ReadTimeout, "Serial read timeout.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// DetectDevice returns the default serial device of the current OS.
func DetectDevice() (string, error) {
	switch runtime.GOOS {
	case "windows":
		return "COM15", nil
	case "linux":
		return "/dev/ttyUSB0", nil
	}
	return "", fmt.Errorf("no default serial device for %s, use -device", runtime.GOOS)
}

// Open opens the configured transport.
func (c *Config) Open() (io.ReadWriteCloser, error) {
	device := c.Device
	if strings.HasPrefix(device, "ws://") || strings.HasPrefix(device, "wss://") {
		return openWebsocket(device)
	}
	if device == "" {
		var err error
		if device, err = DetectDevice(); err != nil {
			return nil, err
		}
	}
	return openSerial(device, c.BaudRate, c.ReadTimeout)
}
