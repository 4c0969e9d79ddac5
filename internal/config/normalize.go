// internal/config/normalize.go
package config

import "path/filepath"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.OutputFolder == "" {
		cfg.OutputFolder = "."
	}
	cfg.OutputFolder = filepath.Clean(cfg.OutputFolder)
}
