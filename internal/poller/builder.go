// internal/poller/builder.go
package poller

import (
	"time"

	cfg "github.com/NarcisoFilho/RM500Q-Modem-Monitor/internal/config"
	"github.com/NarcisoFilho/RM500Q-Modem-Monitor/internal/exchange"
	"github.com/NarcisoFilho/RM500Q-Modem-Monitor/internal/serialport"
)

// Build opens the serial device and wires it through an Exchanger into a
// Poller. The returned closer releases the device handle and must run on
// every exit path.
func Build(c cfg.Config) (*Poller, func() error, error) {
	port, err := serialport.Open(c.Device, c.BaudRate)
	if err != nil {
		return nil, nil, err
	}

	ex, err := exchange.New(port, c.MaxResponseLen)
	if err != nil {
		port.Close()
		return nil, nil, err
	}

	p, err := New(
		Config{
			Commands: c.Commands,
			Interval: time.Duration(c.IntervalMs) * time.Millisecond,
		},
		ex,
	)
	if err != nil {
		port.Close()
		return nil, nil, err
	}

	return p, port.Close, nil
}
