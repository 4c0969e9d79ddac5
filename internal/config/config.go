// internal/config/config.go
package config

// Config holds everything the monitor needs for one run.
type Config struct {
	Device         string   `yaml:"device"`
	BaudRate       int      `yaml:"baud_rate"`
	IntervalMs     int      `yaml:"interval"`
	OutputFolder   string   `yaml:"output_folder"`
	MaxResponseLen int      `yaml:"max_response_len"`
	Commands       []string `yaml:"commands"`
}

// Built-in defaults, overridden field by field by whichever loader runs.
const (
	DefaultDevice         = "/dev/ttyUSB3"
	DefaultBaudRate       = 115200
	DefaultIntervalMs     = 1000
	DefaultMaxResponseLen = 1024
)

// Default returns a Config with every default applied and no commands.
func Default() Config {
	return Config{
		Device:         DefaultDevice,
		BaudRate:       DefaultBaudRate,
		IntervalMs:     DefaultIntervalMs,
		OutputFolder:   ".",
		MaxResponseLen: DefaultMaxResponseLen,
	}
}
