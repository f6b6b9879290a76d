package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/stockledger/inventory-client/internal/app"
	"github.com/stockledger/inventory-client/internal/core/domain"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the event aggregator and the local HTTP API",
		Action: func(ctx context.Context, c *cli.Command) error {
			return withSession(ctx, func(a *app.App) error {
				return a.Serve(ctx)
			})
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the active account, role, pause state and offered operations",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "refresh", Usage: "re-resolve role and pause state first"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return withSession(ctx, func(a *app.App) error {
				if c.Bool("refresh") {
					if err := a.Session.RefreshRole(ctx); err != nil {
						return err
					}
				}
				state := a.Session.State()
				if c.Bool("json") {
					return printJSON(state)
				}
				printState(state)
				return nil
			})
		},
	}
}

func itemsCommand() *cli.Command {
	return &cli.Command{
		Name:  "items",
		Usage: "List the mirrored inventory",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "id", Usage: "show a single item"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return withSession(ctx, func(a *app.App) error {
				items := a.Session.Items()
				if c.IsSet("id") {
					it, ok := a.Session.Item(c.Uint64("id"))
					if !ok {
						return fmt.Errorf("%w: %d", domain.ErrUnknownItem, c.Uint64("id"))
					}
					items = []domain.InventoryItem{it}
				}
				if c.Bool("json") {
					return printJSON(items)
				}
				printItems(items)
				return nil
			})
		},
	}
}

func eventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Listen for ledger events for a while, then print them",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "for", Value: 30 * time.Second, Usage: "how long to listen"},
			&cli.IntFlag{Name: "limit", Usage: "print at most this many (0 for all)"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return withSession(ctx, func(a *app.App) error {
				a.Session.StartEvents(ctx)

				timer := time.NewTimer(c.Duration("for"))
				defer timer.Stop()
				select {
				case <-timer.C:
				case <-ctx.Done():
				}
				a.Session.Close()

				events := a.Session.Events(int(c.Int("limit")))
				if c.Bool("json") {
					return printJSON(events)
				}
				printEvents(events)
				return nil
			})
		},
	}
}

// dispatchAction runs the request built from the command's flags.
func dispatchAction(build func(c *cli.Command) domain.Request) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		return withSession(ctx, func(a *app.App) error {
			result, err := a.Session.Dispatch(ctx, build(c))
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(result)
			}
			printResult(result)
			return nil
		})
	}
}

func idFlag() cli.Flag {
	return &cli.Uint64Flag{Name: "id", Required: true, Usage: "item id"}
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add an item (owner)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.Uint64Flag{Name: "stock"},
			&cli.Uint64Flag{Name: "price"},
			&cli.Uint64Flag{Name: "threshold"},
		},
		Action: dispatchAction(func(c *cli.Command) domain.Request {
			return domain.AddItem(c.String("name"), c.Uint64("stock"), c.Uint64("price"), c.Uint64("threshold"))
		}),
	}
}

func purchaseCommand() *cli.Command {
	return &cli.Command{
		Name:  "purchase",
		Usage: "Buy an item at its mirrored price",
		Flags: []cli.Flag{idFlag(), &cli.Uint64Flag{Name: "quantity", Value: 1}},
		Action: dispatchAction(func(c *cli.Command) domain.Request {
			return domain.Purchase(c.Uint64("id"), c.Uint64("quantity"))
		}),
	}
}

func restockCommand() *cli.Command {
	return &cli.Command{
		Name:  "restock",
		Usage: "Add stock to an item (owner, staff)",
		Flags: []cli.Flag{idFlag(), &cli.Uint64Flag{Name: "amount", Required: true}},
		Action: dispatchAction(func(c *cli.Command) domain.Request {
			return domain.Restock(c.Uint64("id"), c.Uint64("amount"))
		}),
	}
}

func priceCommand() *cli.Command {
	return &cli.Command{
		Name:  "price",
		Usage: "Set an item's price (owner)",
		Flags: []cli.Flag{idFlag(), &cli.Uint64Flag{Name: "price", Required: true}},
		Action: dispatchAction(func(c *cli.Command) domain.Request {
			return domain.UpdatePrice(c.Uint64("id"), c.Uint64("price"))
		}),
	}
}

func thresholdCommand() *cli.Command {
	return &cli.Command{
		Name:  "threshold",
		Usage: "Set an item's low-stock threshold (owner)",
		Flags: []cli.Flag{idFlag(), &cli.Uint64Flag{Name: "threshold", Required: true}},
		Action: dispatchAction(func(c *cli.Command) domain.Request {
			return domain.UpdateThreshold(c.Uint64("id"), c.Uint64("threshold"))
		}),
	}
}

func removeCommand() *cli.Command {
	return &cli.Command{
		Name:  "remove",
		Usage: "Remove an item (owner)",
		Flags: []cli.Flag{idFlag()},
		Action: dispatchAction(func(c *cli.Command) domain.Request {
			return domain.RemoveItem(c.Uint64("id"))
		}),
	}
}

func staffCommand() *cli.Command {
	return &cli.Command{
		Name:  "staff",
		Usage: "Grant or revoke staff (owner)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "add", Usage: "address to grant"},
			&cli.StringFlag{Name: "remove", Usage: "address to revoke"},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if (c.String("add") == "") == (c.String("remove") == "") {
				return ctx, fmt.Errorf("exactly one of --add or --remove is required")
			}
			return ctx, nil
		},
		Action: dispatchAction(func(c *cli.Command) domain.Request {
			if addr := c.String("add"); addr != "" {
				return domain.UpdateStaff(domain.Account(addr), true)
			}
			return domain.UpdateStaff(domain.Account(c.String("remove")), false)
		}),
	}
}

func withdrawCommand() *cli.Command {
	return &cli.Command{
		Name:  "withdraw",
		Usage: "Withdraw the ledger balance (owner)",
		Action: dispatchAction(func(*cli.Command) domain.Request {
			return domain.Withdraw()
		}),
	}
}

func pauseCommand() *cli.Command {
	return &cli.Command{
		Name:  "pause",
		Usage: "Pause the ledger (owner)",
		Action: dispatchAction(func(*cli.Command) domain.Request {
			return domain.SetPaused(true)
		}),
	}
}

func unpauseCommand() *cli.Command {
	return &cli.Command{
		Name:  "unpause",
		Usage: "Resume the ledger (owner)",
		Action: dispatchAction(func(*cli.Command) domain.Request {
			return domain.SetPaused(false)
		}),
	}
}
