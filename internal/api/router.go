package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/stockledger/inventory-client/internal/api/handler"
	"github.com/stockledger/inventory-client/internal/api/middleware"
	"github.com/stockledger/inventory-client/internal/core/domain"
	"github.com/stockledger/inventory-client/internal/core/ports"
	"github.com/stockledger/inventory-client/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	Session   ports.SessionService
	Probes    map[string]handlers.Probe
	JWTSecret string
	Log       zerolog.Logger
	// Registry receives the HTTP metrics. Nil means the default registry,
	// which also holds the session metrics.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.RequestLoggerWithConfig(requestLogger(deps.Log)))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "inventory_api",
		Registerer: registerer,
	}))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Probes)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – is the ledger node reachable?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	// --- Session API ---
	v1 := e.Group("/v1")
	if deps.JWTSecret != "" {
		v1.Use(middleware.Auth(deps.JWTSecret))
	}

	sessionHandler := handler.NewSessionHandler(deps.Session)
	itemHandler := handler.NewItemHandler(deps.Session)
	opHandler := handler.NewOperationHandler(deps.Session)
	eventHandler := handler.NewEventHandler(deps.Session)

	offered := func(c domain.Capability) echo.MiddlewareFunc {
		return middleware.Offered(deps.Session, c)
	}

	v1.GET("/session", sessionHandler.Get)
	v1.POST("/session/refresh", sessionHandler.Refresh)

	v1.GET("/items", itemHandler.List)
	v1.POST("/items/refresh", itemHandler.Refresh)
	v1.GET("/items/:id", itemHandler.Get)

	v1.POST("/items", opHandler.AddItem, offered(domain.CapAdd))
	v1.POST("/items/:id/purchase", opHandler.Purchase, offered(domain.CapPurchase))
	v1.POST("/items/:id/restock", opHandler.Restock, offered(domain.CapRestock))
	v1.PUT("/items/:id/price", opHandler.UpdatePrice, offered(domain.CapUpdatePrice))
	v1.PUT("/items/:id/threshold", opHandler.UpdateThreshold, offered(domain.CapUpdateThreshold))
	v1.DELETE("/items/:id", opHandler.Remove, offered(domain.CapRemove))
	v1.POST("/staff", opHandler.UpdateStaff, offered(domain.CapManageStaff))
	v1.POST("/withdraw", opHandler.Withdraw, offered(domain.CapWithdraw))
	v1.POST("/pause", opHandler.Pause, offered(domain.CapPause))
	v1.POST("/unpause", opHandler.Unpause, offered(domain.CapUnpause))

	v1.GET("/events", eventHandler.List)

	return e
}

func requestLogger(log zerolog.Logger) echomiddleware.RequestLoggerConfig {
	return echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}
}
