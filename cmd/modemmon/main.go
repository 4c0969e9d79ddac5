// cmd/modemmon/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/NarcisoFilho/RM500Q-Modem-Monitor/internal/config"
	"github.com/NarcisoFilho/RM500Q-Modem-Monitor/internal/poller"
	"github.com/NarcisoFilho/RM500Q-Modem-Monitor/internal/recorder"
)

func main() {
	configPath := flag.String("c", "", "configuration file; all settings and commands come from it")
	flag.Parse()

	if err := run(*configPath, flag.Args()); err != nil {
		log.Fatalf("modemmon: %v", err)
	}
}

// run dispatches between the two CLI modes. Fatal setup errors bubble up so
// main can exit 1 after every deferred release has run.
func run(configPath string, args []string) error {
	// Termination requests are observed at iteration boundaries: an in-flight
	// batch finishes and its row is written before shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if configPath != "" {
		// In file mode all commands and settings come from the file;
		// positional arguments are not read.
		return runLoop(ctx, configPath)
	}
	return runOnce(args)
}

// runOnce runs the positional commands as a single batch and prints the
// responses. No CSV file is created.
func runOnce(commands []string) error {
	if len(commands) == 0 {
		return errors.New("no AT commands provided")
	}

	cfg := config.Default()
	cfg.Commands = commands
	if err := config.Validate(cfg); err != nil {
		return err
	}

	p, closePort, err := poller.Build(cfg)
	if err != nil {
		return err
	}
	defer closePort()

	cycle := p.PollOnce()
	for _, r := range cycle.Results {
		fmt.Printf("Response to %q:\n%s\n", r.Command, r.Response)
	}
	return nil
}

// runLoop polls on the configured interval and appends every cycle to the
// CSV sink until the context is cancelled.
func runLoop(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	config.Normalize(&cfg)

	p, closePort, err := poller.Build(cfg)
	if err != nil {
		return err
	}
	defer closePort()

	sink, err := recorder.NewCSV(cfg.OutputFolder, cfg.Commands, time.Now())
	if err != nil {
		return err
	}
	defer sink.Close()

	log.Printf("polling %s at %d baud every %d ms, logging to %s",
		cfg.Device, cfg.BaudRate, cfg.IntervalMs, sink.Path())

	out := make(chan poller.PollCycle)
	go p.Run(ctx, out)

	for cycle := range out {
		if err := sink.WriteCycle(cycle); err != nil {
			log.Printf("sink write: %v", err)
		}
		display(cycle)
	}

	return nil
}

// display echoes one cycle to stdout as a single live line.
func display(c poller.PollCycle) {
	var b strings.Builder
	b.WriteString(c.At.Format(recorder.TimestampLayout))
	for _, r := range c.Results {
		b.WriteString("  ")
		b.WriteString(r.Command)
		b.WriteByte('=')
		b.WriteString(strings.TrimSpace(r.Response))
	}
	fmt.Println(b.String())
}
