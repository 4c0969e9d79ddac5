// internal/poller/poller.go
package poller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/NarcisoFilho/RM500Q-Modem-Monitor/internal/exchange"
)

// Modem abstracts the command exchange the poller drives.
// The poller depends on the round trip only, not on the serial line.
type Modem interface {
	Flush() error
	Exchange(cmd string) (string, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Commands []string
	Interval time.Duration
}

// Poller is a dumb, clock-driven batch runner.
type Poller struct {
	cfg   Config
	modem Modem
}

// New creates a poller with immutable config.
func New(cfg Config, modem Modem) (*Poller, error) {
	if modem == nil {
		return nil, errors.New("poller: modem required")
	}
	if cfg.Interval < 0 {
		return nil, errors.New("poller: interval must be >= 0")
	}
	if len(cfg.Commands) == 0 {
		return nil, errors.New("poller: at least one command required")
	}
	for _, cmd := range cfg.Commands {
		if cmd == "" {
			return nil, errors.New("poller: empty command")
		}
		if strings.ContainsAny(cmd, "\r\n") {
			return nil, errors.New("poller: command contains a line terminator")
		}
	}
	return &Poller{cfg: cfg, modem: modem}, nil
}

// PollOnce performs exactly one poll cycle.
//
// A failing exchange does not abort the batch: the slot is recorded with the
// ERROR sentinel and the remaining commands still run, so a cycle always has
// exactly one result per configured command. The timestamp is captured once,
// after the last exchange, and covers the whole batch.
func (p *Poller) PollOnce() PollCycle {
	results := make([]CommandResult, 0, len(p.cfg.Commands))

	for _, cmd := range p.cfg.Commands {
		if err := p.modem.Flush(); err != nil {
			log.Printf("poller: flush before %q: %v", cmd, err)
		}

		text, err := p.modem.Exchange(cmd)
		if err != nil {
			log.Printf("poller: command %q: %v", cmd, err)
			results = append(results, CommandResult{
				Command:  cmd,
				Response: exchange.Sentinel,
				Err:      err,
			})
			continue
		}

		results = append(results, CommandResult{Command: cmd, Response: text})
	}

	return PollCycle{At: time.Now(), Results: results}
}
