// internal/config/load.go
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfigFile marks any failure to read or parse a configuration file.
var ErrConfigFile = errors.New("config file error")

// Load reads a configuration file and returns a Config with defaults applied
// for every field the file does not set.
//
// Files ending in .yaml or .yml are parsed as YAML. Anything else uses the
// line-oriented format:
//
//	device: /dev/ttyUSB3
//	baud_rate: 115200
//	interval: 1000
//	output_folder: ./logs
//	commands: {
//	    "AT+CSQ", AT+CREG?
//	}
//
// Keys are case-insensitive; values keep their case. Surrounding quotes and
// whitespace are stripped from values. The commands block may open and close on
// the key line or span lines; entries are comma-separated and end at '}'.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrConfigFile, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("%w: %s: %v", ErrConfigFile, path, err)
		}
		return cfg, nil
	default:
		if err := parseConf(f, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: %s: %v", ErrConfigFile, path, err)
		}
		return cfg, nil
	}
}

func parseConf(r io.Reader, cfg *Config) error {
	sc := bufio.NewScanner(r)
	inBlock := false

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if inBlock {
			line = strings.TrimSpace(strings.TrimPrefix(line, "{"))
			if parseCommandLine(line, cfg) {
				inBlock = false
			}
			continue
		}

		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])

		switch key {
		case "device":
			cfg.Device = trimQuotes(value)
		case "baud_rate":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("bad baud_rate %q", value)
			}
			cfg.BaudRate = n
		case "interval":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("bad interval %q", value)
			}
			cfg.IntervalMs = n
		case "output_folder":
			cfg.OutputFolder = trimQuotes(value)
		case "max_response_len":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("bad max_response_len %q", value)
			}
			cfg.MaxResponseLen = n
		case "commands":
			// Block may start on this line: strip the brace and keep reading.
			rest := strings.TrimSpace(strings.TrimPrefix(value, "{"))
			if rest == "" {
				inBlock = true
				continue
			}
			inBlock = !parseCommandLine(rest, cfg)
		default:
			// Unknown keys are ignored.
		}
	}

	return sc.Err()
}

// parseCommandLine consumes one line inside a commands block. It reports
// whether the closing brace was seen.
func parseCommandLine(line string, cfg *Config) bool {
	done := false
	if idx := strings.Index(line, "}"); idx >= 0 {
		line = line[:idx]
		done = true
	}
	for _, part := range strings.Split(line, ",") {
		cmd := trimQuotes(strings.TrimSpace(part))
		if cmd == "" {
			continue
		}
		cfg.Commands = append(cfg.Commands, cmd)
	}
	return done
}

// trimQuotes strips one matching pair of surrounding single or double quotes.
func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}
