// Package app wires configuration, the ledger adapter, identity and the
// session together for the CLI and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/stockledger/inventory-client/internal/api"
	"github.com/stockledger/inventory-client/internal/core/service"
	"github.com/stockledger/inventory-client/internal/infrastructure/db/redis"
	"github.com/stockledger/inventory-client/internal/infrastructure/gateway/rpc"
	"github.com/stockledger/inventory-client/internal/infrastructure/http/handlers"
	"github.com/stockledger/inventory-client/internal/infrastructure/identity"
	"github.com/stockledger/inventory-client/internal/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// App owns one session against one ledger node.
type App struct {
	cfg     *config.Config
	log     zerolog.Logger
	id      string
	gateway *rpc.Client
	rdb     *goredis.Client
	Session *service.Session
}

// New connects the collaborators and starts the session: identity, role,
// pause state and the first mirror refresh. Redis is only dialled when event
// dedup is enabled.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	id := uuid.NewString()
	log = log.With().Str("session", id).Logger()
	a := &App{cfg: cfg, log: log, id: id}

	a.gateway = rpc.New(rpc.Config{
		RPCURL:  cfg.Gateway.RPCURL,
		WSURL:   cfg.Gateway.WSURL,
		Timeout: cfg.Gateway.Timeout,
	}, log.With().Str("component", "gateway").Logger())

	opts := service.SessionOptions{EventLogCapacity: cfg.Events.LogCapacity}
	if cfg.Events.Dedup {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, fmt.Errorf("event dedup: %w", err)
		}
		a.rdb = rdb
		opts.Dedup = redis.NewEventDedup(rdb, a.id, 0)
	}

	provider := identity.New(cfg.Gateway.Account, a.gateway)
	a.Session = service.NewSession(a.gateway, provider, log, opts)
	if err := a.Session.Start(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// ID identifies this session. Event dedup marks are scoped to it.
func (a *App) ID() string { return a.id }

// Close stops the event aggregator and releases connections.
func (a *App) Close() {
	a.Session.Close()
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
}

// Serve runs the event aggregator and the HTTP API until ctx is done, then
// shuts the server down gracefully.
func (a *App) Serve(ctx context.Context) error {
	a.Session.StartEvents(ctx)

	router := api.NewRouter(api.Deps{
		Session:   a.Session,
		Probes:    a.probes(),
		JWTSecret: a.cfg.API.JWTSecret,
		Log:       a.log.With().Str("component", "api").Logger(),
	})
	srv := &http.Server{Addr: a.cfg.API.Addr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", srv.Addr).Msg("api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		a.log.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (a *App) probes() map[string]handlers.Probe {
	probes := map[string]handlers.Probe{
		"ledger": func(ctx context.Context) error {
			_, err := a.gateway.QueryPaused(ctx)
			return err
		},
	}
	if a.rdb != nil {
		probes["redis"] = func(ctx context.Context) error {
			return a.rdb.Ping(ctx).Err()
		}
	}
	return probes
}
