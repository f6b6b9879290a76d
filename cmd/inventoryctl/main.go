package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sethvargo/go-envconfig"
	"github.com/urfave/cli/v3"

	"github.com/stockledger/inventory-client/internal/app"
	"github.com/stockledger/inventory-client/internal/pkg/config"
	"github.com/stockledger/inventory-client/pkg/logger"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "inventoryctl",
		Usage: "Client for the inventory ledger: session, mirror, mutations and events",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
		},
		Commands: []*cli.Command{
			serveCommand(),
			statusCommand(),
			itemsCommand(),
			eventsCommand(),
			addCommand(),
			purchaseCommand(),
			restockCommand(),
			priceCommand(),
			thresholdCommand(),
			removeCommand(),
			staffCommand(),
			withdrawCommand(),
			pauseCommand(),
			unpauseCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// withSession loads configuration, starts a session and hands it to fn.
func withSession(ctx context.Context, fn func(*app.App) error) error {
	cfg, err := config.LoadWith(ctx, envconfig.OsLookuper())
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.Production()})

	a, err := app.New(ctx, cfg, logger.Get())
	if err != nil {
		log := logger.Component("cli")
		log.Error().Err(err).Msg("session start failed")
		return err
	}
	defer a.Close()
	return fn(a)
}
