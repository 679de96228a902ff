package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-butterflies/internal/viewer"
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/simulation"
)

const maxFrameDelta = 100 * time.Millisecond

type options struct {
	configFile string
	seed       uint64
	seedSet    bool // -seed given explicitly, 0 included
	debug      bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("butterflies", flag.ContinueOnError)
	fs.StringVar(&opts.configFile, "config", "", "path to a JSON or YAML meadow config")
	fs.Uint64Var(&opts.seed, "seed", 0, "override the config seed")
	fs.BoolVar(&opts.debug, "debug", false, "log at debug level")
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
		fmt.Fprintf(os.Stderr, "butterflies: %v\n", err)
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

	level := golog.InfoLevel
	if opts.debug {
		level = golog.DebugLevel
	}
	system, err := actor.NewActorSystem("Meadow",
		actor.WithLogger(golog.New(level, os.Stderr)),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return fmt.Errorf("actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return fmt.Errorf("start actor system: %w", err)
	}
	defer func() { _ = system.Stop(context.Background()) }()

	game, err := viewer.NewGame(ctx, system, cfg, simulation.WithMaxDelta(maxFrameDelta))
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowSize(viewer.ScreenWidth, viewer.ScreenHeight)
	ebiten.SetWindowTitle("Butterflies")
	if err := ebiten.RunGame(&quitOnCancel{Game: game, ctx: ctx}); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// quitOnCancel ends the ebiten loop when ctx is cancelled by a signal.
type quitOnCancel struct {
	*viewer.Game
	ctx context.Context
}

func (q *quitOnCancel) Update() error {
	if q.ctx.Err() != nil {
		return ebiten.Termination
	}
	return q.Game.Update()
}
