package bridge

import (
	"flag"
	"os"
	"time"

	"github.com/denisbrodbeck/machineid"
)

// Config provides options to set up a Bridge.
type Config struct {
	// BrokerURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix
	BrokerURL string
	// ID names this bridge in topic paths (<id>/set, <id>/state).
	ID string
	// SendInterval is the fixed interval of the frame send loop.
	SendInterval time.Duration
}

var defaultConfig = Config{
	BrokerURL:    "mqtt://localhost:1883/drivelink/",
	SendInterval: time.Second,
}

func init() {
	if val := os.Getenv("DRIVELINK_MQTT_URL"); val != "" {
		defaultConfig.BrokerURL = val
	}
	defaultConfig.ID = MachineID()
}

// MachineID retrieves the unique ID identifying the machine.
func MachineID() string {
	id, err := machineid.ID()
	if err != nil {
		panic(err)
	}
	return id
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.BrokerURL, "mqtt", defaultConfig.BrokerURL, "MQTT broker URL")
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Bridge ID")
	flag.DurationVar(&defaultConfig.SendInterval, "send-interval", defaultConfig.SendInterval, "Frame send interval")
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
