// internal/poller/types.go
package poller

import "time"

// CommandResult is the outcome of one command exchange.
// Response is the raw text, or the ERROR sentinel when Err is non-nil.
type CommandResult struct {
	Command  string
	Response string
	Err      error
}

// PollCycle is a snapshot produced by one poll iteration: one timestamp for
// the whole batch plus one result per configured command, in configuration
// order. Produced once per interval tick, serialized immediately, not
// retained.
type PollCycle struct {
	At      time.Time
	Results []CommandResult
}
