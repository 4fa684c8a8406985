// Package cli implements the foodiee command line client. Every command
// builds the same dependency graph as the API server and talks to the
// collection service directly, so it works offline against the bundled
// catalog and upgrades to the backend API when one is configured.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/fx"

	"github.com/foodiee/recipes/internal/application/collection"
	"github.com/foodiee/recipes/internal/infrastructure/config"
	"github.com/foodiee/recipes/internal/infrastructure/container"
	"github.com/foodiee/recipes/internal/ports/inbound"
)

const name = "foodiee"

// overridden during build with ldflags
var version = "dev"

// stopTimeout bounds releasing storage once a command has finished
const stopTimeout = 10 * time.Second

// Execute runs the root command against os.Args and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewCommand returns the root command with every subcommand attached.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Browse, search and favorite recipes from the Foodiee library",
		Version:               version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a config file (default ./config.yaml when present)",
				Sources: cli.EnvVars("FOODIEE_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "remote",
				Usage: "Backend API base URL, overrides remote.base_url",
			},
			&cli.BoolFlag{
				Name:  "mocks",
				Usage: "Ignore the backend API and answer from the local catalog",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "Log level written to stderr (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			browseCmd(),
			showCmd(),
			favoriteCmd(),
			favoritesCmd(),
			suggestCmd(),
			filtersCmd(),
		},
	}
}

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	cfg.App.LogStderr = true
	cfg.App.LogLevel = cmd.String("log-level")
	if remote := cmd.String("remote"); remote != "" {
		cfg.Remote.BaseURL = remote
	}
	if cmd.Bool("mocks") {
		cfg.Remote.UseMocks = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// withService starts the core graph, runs fn, then waits for pending
// favorite syncs before releasing storage.
func withService(ctx context.Context, cmd *cli.Command, fn func(context.Context, inbound.CollectionService) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var service *collection.Service
	app := fx.New(
		fx.Supply(cfg),
		container.CoreModule,
		fx.Populate(&service),
	)
	if err := app.Err(); err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	runErr := fn(ctx, service)

	flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Remote.SyncTimeout)
	defer cancel()
	if err := service.Flush(flushCtx); err != nil {
		fmt.Fprintln(os.Stderr, "warning: favorite sync still pending:", err)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop: %w", err)
	}
	return runErr
}

// printJSON writes v as indented JSON to the root command's writer.
func printJSON(cmd *cli.Command, v interface{}) error {
	var w io.Writer = os.Stdout
	if root := cmd.Root(); root != nil && root.Writer != nil {
		w = root.Writer
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
