// internal/serialport/port.go

// Package serialport owns the serial device handle for the monitor.
//
// The line discipline matches what the modem expects: 8 data bits, no parity,
// one stop bit, no flow control, raw non-canonical mode. Reads block up to one
// second waiting for at least one byte and return early as soon as any data
// arrives, so the worst-case latency of a full response read is a small
// multiple of a second, never proportional to the buffer size.
package serialport

import (
	"bytes"
	"errors"
	"fmt"
	"syscall"
	"time"

	"go.bug.st/serial"
)

// Error taxonomy for the channel. Callers branch with errors.Is.
var (
	ErrOpenFailed   = errors.New("serial open failed")
	ErrConfigFailed = errors.New("serial configuration failed")
	ErrWriteFailed  = errors.New("serial write failed")
	ErrReadFailed   = errors.New("serial read failed")
)

// readTimeout is the per-read budget. A read returning zero bytes after this
// long means "no more data now" and ends a ReadUntil loop without error.
const readTimeout = time.Second

// conn is the subset of serial.Port the monitor uses. Narrowed so tests can
// substitute a scripted fake.
type conn interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	SetReadTimeout(t time.Duration) error
	ResetInputBuffer() error
	ResetOutputBuffer() error
	Close() error
}

// openPort is overridable in tests.
var openPort = func(device string, mode *serial.Mode) (conn, error) {
	return serial.Open(device, mode)
}

// Port is an open, configured serial channel. Exactly one handle per process;
// the mode is applied at open and never changed mid-run.
type Port struct {
	conn   conn
	device string
}

// Open opens the device read/write with no controlling-terminal semantics and
// applies the 8N1 raw-mode configuration and the one-second read timeout.
func Open(device string, baudRate int) (*Port, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	c, err := openPort(device, mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenFailed, device, err)
	}

	p := &Port{conn: c, device: device}
	if err := p.configure(); err != nil {
		c.Close()
		return nil, err
	}
	return p, nil
}

// configure sets the read policy. The mode itself (baud, 8N1, no flow
// control, raw) is applied by Open.
func (p *Port) configure() error {
	if err := p.conn.SetReadTimeout(readTimeout); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigFailed, p.device, err)
	}
	return nil
}

// Flush discards unread input and unwritten output queued on the channel.
// Called before every command send so a stale response from a previous
// exchange is never mistaken for the current one.
func (p *Port) Flush() error {
	if err := p.conn.ResetInputBuffer(); err != nil {
		return fmt.Errorf("%w: flush input: %v", ErrConfigFailed, err)
	}
	if err := p.conn.ResetOutputBuffer(); err != nil {
		return fmt.Errorf("%w: flush output: %v", ErrConfigFailed, err)
	}
	return nil
}

// Write sends raw bytes down the line.
func (p *Port) Write(b []byte) (int, error) {
	n, err := p.conn.Write(b)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return n, nil
}

// ReadUntil accumulates reads until the terminator byte appears anywhere in
// the buffer, a read times out with no data, or maxLen-1 bytes have been
// collected. Transient EAGAIN conditions are retried; only a hard read
// failure is an error.
//
// The terminator check runs against the whole accumulated buffer, so the
// first newline ends the read even if the modem sends further lines (an echo
// line followed by a result line is truncated to the echo). That matches the
// behavior downstream consumers were built against.
func (p *Port) ReadUntil(term byte, maxLen int) (string, error) {
	if maxLen < 2 {
		return "", nil
	}

	buf := make([]byte, 0, maxLen-1)
	chunk := make([]byte, maxLen-1)

	for len(buf) < maxLen-1 {
		n, err := p.conn.Read(chunk[:maxLen-1-len(buf)])
		if err != nil {
			if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK) {
				continue
			}
			return "", fmt.Errorf("%w: %v", ErrReadFailed, err)
		}
		if n == 0 {
			// Read timeout with nothing available: no more data now.
			break
		}
		buf = append(buf, chunk[:n]...)
		if bytes.IndexByte(buf, term) >= 0 {
			break
		}
	}

	return string(buf), nil
}

// Close releases the device handle. Safe to call on every exit path.
func (p *Port) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}
