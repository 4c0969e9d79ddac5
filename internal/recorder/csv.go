// internal/recorder/csv.go

// Package recorder appends poll cycles to a CSV file. One file per run, named
// after the creation time, inside the configured output folder.
package recorder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/NarcisoFilho/RM500Q-Modem-Monitor/internal/poller"
)

// ErrSinkCreate marks a failure to create the output folder or file.
var ErrSinkCreate = errors.New("sink create failed")

// TimestampLayout is the wall-clock format of the first column.
const TimestampLayout = "2006-01-02 15:04:05"

const fileNameLayout = "2006-01-02_15-04-05"

// CSVSink writes one header row then one data row per poll cycle.
//
// The documented format quotes every command, timestamp, and response cell
// unconditionally (only the Timestamp header cell is bare), which is why the
// rows are assembled by hand instead of with encoding/csv: the stdlib writer
// quotes only when a cell requires it.
type CSVSink struct {
	f    *os.File
	path string
}

// NewCSV creates the output folder (owner-only permissions) if absent,
// creates a timestamped CSV file inside it, and writes the header row:
// Timestamp followed by one quoted column per command.
func NewCSV(folder string, commands []string, now time.Time) (*CSVSink, error) {
	if err := os.MkdirAll(folder, 0o700); err != nil {
		return nil, fmt.Errorf("%w: folder %s: %v", ErrSinkCreate, folder, err)
	}

	path := filepath.Join(folder, "modem_log_"+now.Format(fileNameLayout)+".csv")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSinkCreate, path, err)
	}

	cells := make([]string, 0, len(commands)+1)
	cells = append(cells, "Timestamp")
	for _, cmd := range commands {
		cells = append(cells, quote(cmd))
	}

	if _, err := f.WriteString(strings.Join(cells, ",") + "\n"); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: header: %v", ErrSinkCreate, err)
	}

	return &CSVSink{f: f, path: path}, nil
}

// Path returns the location of the created file.
func (s *CSVSink) Path() string {
	return s.path
}

// WriteCycle appends one row: quoted timestamp, then one quoted response per
// command in configuration order. The row is flushed to the OS before
// returning, so a shutdown between iterations never leaves a partial row.
func (s *CSVSink) WriteCycle(c poller.PollCycle) error {
	cells := make([]string, 0, len(c.Results)+1)
	cells = append(cells, quote(c.At.Format(TimestampLayout)))
	for _, r := range c.Results {
		cells = append(cells, quote(r.Response))
	}

	if _, err := s.f.WriteString(strings.Join(cells, ",") + "\n"); err != nil {
		return fmt.Errorf("csv row: %w", err)
	}
	return s.f.Sync()
}

// Close releases the file handle. Safe to defer on every exit path.
func (s *CSVSink) Close() error {
	if s == nil || s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}

// quote wraps a cell in double quotes, doubling any embedded quote so the row
// stays well-formed even for garbled responses.
func quote(cell string) string {
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}
