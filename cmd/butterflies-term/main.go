// Command butterflies-term runs the meadow in a terminal. Press q or Esc to quit.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-butterflies/pkg/render"
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/render/terminal"
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/simulation"
)

type options struct {
	configFile string
	seed       uint64
	seedSet    bool // -seed given explicitly, 0 included
	debug      bool
	fps        int
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("butterflies-term", flag.ContinueOnError)
	fs.StringVar(&opts.configFile, "config", "", "path to a JSON or YAML meadow config")
	fs.Uint64Var(&opts.seed, "seed", 0, "override the config seed")
	fs.BoolVar(&opts.debug, "debug", false, "log at debug level to butterflies.log")
	fs.IntVar(&opts.fps, "fps", 30, "frames per second")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seedSet = true
		}
	})
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "butterflies-term: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(opts options) (*simulation.Config, error) {
	cfg := simulation.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := simulation.LoadConfig(opts.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.seedSet {
		cfg.Seed = opts.seed
	}
	return cfg, nil
}

func run(ctx context.Context, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// The screen owns stdout, so logs go to a file or nowhere
	var logger golog.Logger = golog.DiscardLogger
	if opts.debug {
		f, err := os.Create("butterflies.log")
		if err != nil {
			return err
		}
		defer f.Close()
		logger = golog.New(golog.DebugLevel, f)
	}

	meadow, err := simulation.NewMeadow(cfg, logger)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The driver closes the renderer, which finalizes the screen
	driver := simulation.NewDriver(meadow, terminal.New(screen, render.DefaultCamera(), logger),
		simulation.WithLogger(logger),
		simulation.WithMaxDelta(100*time.Millisecond))
	loop := driver.Start(ctx, simulation.NewTickerFrames(opts.fps))
	go terminal.Listen(screen, cancel)

	select {
	case <-ctx.Done():
	case <-loop.Done():
	}
	loop.Stop()
	return nil
}
