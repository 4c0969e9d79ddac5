// internal/exchange/exchange.go

// Package exchange performs one AT command round trip: write the command with
// its carriage-return terminator, then read the raw response text.
package exchange

import (
	"errors"
	"fmt"
)

// Sentinel recorded in place of a response when an exchange fails. The poll
// cycle still completes and is still logged.
const Sentinel = "ERROR"

// Channel is the subset of the serial port the exchange needs.
type Channel interface {
	Flush() error
	Write(b []byte) (int, error)
	ReadUntil(term byte, maxLen int) (string, error)
}

// Send writes the command followed by exactly one carriage return as one
// contiguous write. The written byte count must equal len(cmd)+1.
func Send(ch Channel, cmd string) error {
	data := []byte(cmd + "\r")
	n, err := ch.Write(data)
	if err != nil {
		return fmt.Errorf("send %q: %w", cmd, err)
	}
	if n != len(data) {
		return fmt.Errorf("send %q: short write: %d of %d bytes", cmd, n, len(data))
	}
	return nil
}

// Receive reads the response text, stopping at the first newline.
func Receive(ch Channel, maxLen int) (string, error) {
	text, err := ch.ReadUntil('\n', maxLen)
	if err != nil {
		return "", fmt.Errorf("receive: %w", err)
	}
	return text, nil
}

// Exchange composes Send then Receive. On send failure the read is skipped:
// no response is captured for a command that never went out.
func Exchange(ch Channel, cmd string, maxLen int) (string, error) {
	if err := Send(ch, cmd); err != nil {
		return "", err
	}
	return Receive(ch, maxLen)
}

// Exchanger bundles a channel with the configured response size bound and
// satisfies the poller's modem contract.
type Exchanger struct {
	ch     Channel
	maxLen int
}

// New returns an Exchanger over ch. maxLen bounds each response to maxLen-1
// bytes.
func New(ch Channel, maxLen int) (*Exchanger, error) {
	if ch == nil {
		return nil, errors.New("exchange: channel required")
	}
	if maxLen < 2 {
		return nil, fmt.Errorf("exchange: max response length must be >= 2, got %d", maxLen)
	}
	return &Exchanger{ch: ch, maxLen: maxLen}, nil
}

// Flush discards any stale bytes queued on the channel.
func (e *Exchanger) Flush() error {
	return e.ch.Flush()
}

// Exchange runs one command round trip with the configured size bound.
func (e *Exchanger) Exchange(cmd string) (string, error) {
	return Exchange(e.ch, cmd, e.maxLen)
}
