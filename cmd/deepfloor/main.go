// Package main is the entry point for deepfloor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/samdwyer/deepfloor/internal/level"
	"github.com/samdwyer/deepfloor/internal/logger"
	"github.com/samdwyer/deepfloor/internal/spawn"
	"github.com/samdwyer/deepfloor/internal/telemetry"
	"github.com/samdwyer/deepfloor/internal/ui"
	"github.com/samdwyer/deepfloor/internal/world"
)

func main() {
	// Load .env file for local development
	envErr := godotenv.Load()

	cfg := level.ConfigFromEnv()
	var (
		dump     = flag.Bool("dump", false, "print the floor as text and exit")
		savePath = flag.String("save", "", "write the floor snapshot to this file")
		loadPath = flag.String("load", "", "restore the floor from this snapshot")
		corridor = flag.String("corridors", cfg.World.Corridors.String(), "corridor style: l or z")
	)
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "floor seed, 0 for a random one")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "floor width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "floor height")
	flag.IntVar(&cfg.Depth, "depth", cfg.Depth, "starting depth")
	flag.BoolVar(&cfg.Populate, "populate", cfg.Populate, "place monsters and items")
	flag.Parse()
	cfg.World.Corridors = world.ParseCorridorStyle(*corridor)

	// The viewer owns the terminal, so it only logs to LOG_FILE.
	logOut, closeLog := logOutput(*dump)
	defer closeLog()
	logger.Init(logOut)
	log := logger.Component("main")
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.WithError(envErr).Warn(".env file not loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.WithError(err).Warn("Telemetry setup failed, running without tracing")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.WithError(err).Error("Error shutting down telemetry")
			}
		}()
	}

	if err := run(ctx, cfg, *loadPath, *savePath, *dump); err != nil {
		log.WithError(err).Error("deepfloor failed")
		fmt.Fprintln(os.Stderr, err)
		closeLog()
		os.Exit(1)
	}
}

func logOutput(dump bool) (io.Writer, func()) {
	if path := os.Getenv("LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			return f, func() { f.Close() }
		}
		fmt.Fprintf(os.Stderr, "Note: log file not opened: %v\n", err)
	}
	if dump {
		return os.Stderr, func() {}
	}
	return io.Discard, func() {}
}

func run(ctx context.Context, cfg level.Config, loadPath, savePath string, dump bool) error {
	spawner, err := spawn.Load()
	if err != nil {
		return fmt.Errorf("failed to load spawn tables: %w", err)
	}
	c := level.New(cfg, spawner)

	var message string
	if loadPath != "" {
		message, err = restore(ctx, c, loadPath)
		if err != nil {
			return err
		}
	} else if err := c.Start(ctx); err != nil {
		return err
	}

	if savePath != "" {
		if err := save(c, savePath); err != nil {
			return err
		}
	}

	if dump {
		if message != "" {
			fmt.Fprintln(os.Stderr, message)
		}
		return ui.Dump(os.Stdout, c.Grid(), c.Population(), ui.IsTerminal(os.Stdout))
	}

	v, err := ui.NewViewer(c)
	if err != nil {
		return fmt.Errorf("failed to open screen: %w", err)
	}
	v.SetMessage(message)
	return v.Run(ctx)
}

// restore loads a snapshot. A snapshot that cannot be used still leaves a
// fresh floor behind, so only a missing floor is fatal.
func restore(ctx context.Context, c *level.Coordinator, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	message, err := c.Load(ctx, f)
	if err != nil && c.Grid() == nil {
		return "", err
	}
	return message, nil
}

func save(c *level.Coordinator, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	if err := c.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
