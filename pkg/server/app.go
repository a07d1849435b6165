package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/virtexvirtuoso/virtuoso-core/internal/handler/api"
	"github.com/virtexvirtuoso/virtuoso-core/internal/usecase"
	pkgcache "github.com/virtexvirtuoso/virtuoso-core/pkg/cache"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/config"
	applogger "github.com/virtexvirtuoso/virtuoso-core/pkg/logger"
)

// App encapsulates the application lifecycle: the monitoring loop, the
// ops HTTP server, and graceful shutdown.
type App struct {
	cfg     *config.Config
	log     *applogger.Logger
	engine  *usecase.Engine
	pool    *usecase.Pool
	handler *api.SignalsHandler
	backend pkgcache.Service
	echo    *echo.Echo
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	engine *usecase.Engine,
	pool *usecase.Pool,
	handler *api.SignalsHandler,
	backend pkgcache.Service,
) *App {
	return &App{
		cfg:     cfg,
		log:     log,
		engine:  engine,
		pool:    pool,
		handler: handler,
		backend: backend,
	}
}

// Run starts the monitoring loop and ops server, then blocks until an
// interrupt arrives.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.echo = echo.New()
	a.echo.HideBanner = true
	a.echo.HidePort = true
	a.echo.Use(echomw.Recover())
	a.handler.RegisterRoutes(a.echo)
	if a.cfg.Metrics.Enabled {
		a.echo.GET(a.cfg.Metrics.Path, echo.WrapHandler(promhttp.Handler()))
	}

	go func() {
		addr := fmt.Sprintf(":%d", a.cfg.Server.Port)
		a.log.Info("ops server listening", applogger.String("addr", addr))
		if err := a.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("ops server error", applogger.Error(err))
		}
	}()

	go a.monitorLoop(ctx)
	a.log.Info("engine started",
		applogger.Strings("symbols", a.cfg.Engine.Symbols),
		applogger.Duration("interval", a.cfg.Engine.Interval.Std()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(cancel)
}

// monitorLoop drives one engine cycle per interval. The first cycle
// runs immediately.
func (a *App) monitorLoop(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.Engine.Interval.Std())
	defer ticker.Stop()

	a.engine.RunCycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.engine.RunCycle(ctx)
		}
	}
}

func (a *App) shutdown(cancel context.CancelFunc) error {
	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout.Std())
	defer done()
	if err := a.echo.Shutdown(shutdownCtx); err != nil {
		a.log.Warn("ops server shutdown error", applogger.Error(err))
	}

	a.pool.Close()

	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
