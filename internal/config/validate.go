// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg Config) error {
	if cfg.Device == "" {
		return fmt.Errorf("config: device required")
	}
	if cfg.BaudRate <= 0 {
		return fmt.Errorf("config: baud_rate must be > 0, got %d", cfg.BaudRate)
	}
	if cfg.IntervalMs < 0 {
		return fmt.Errorf("config: interval must be >= 0, got %d", cfg.IntervalMs)
	}
	if cfg.MaxResponseLen < 2 {
		return fmt.Errorf("config: max_response_len must be >= 2, got %d", cfg.MaxResponseLen)
	}
	if len(cfg.Commands) == 0 {
		return fmt.Errorf("config: at least one command required")
	}

	for i, cmd := range cfg.Commands {
		if cmd == "" {
			return fmt.Errorf("config: command %d is empty", i)
		}
		if strings.ContainsAny(cmd, "\r\n") {
			return fmt.Errorf("config: command %q contains a line terminator", cmd)
		}
	}

	return nil
}
