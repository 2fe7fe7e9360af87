// Package server initializes and runs the clinicdesk backend: the HTTP API,
// the realtime hub, and the refresh token janitor.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/logging"
	"github.com/dmitrijs2005/clinicdesk/internal/server/config"
	"github.com/dmitrijs2005/clinicdesk/internal/server/httpapi"
	"github.com/dmitrijs2005/clinicdesk/internal/server/hub"
	"github.com/dmitrijs2005/clinicdesk/internal/server/metrics"
	"github.com/dmitrijs2005/clinicdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/clinicdesk/internal/server/services"
	"github.com/labstack/echo/v4"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	userService *services.UserService
	hub         *hub.Hub
	metrics     *metrics.Server
	router      *echo.Echo
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := metrics.New()
	h := hub.New(logger, m)

	us := services.NewUserService(db, rm, c)
	rs := services.NewRecordsService(db, rm, h)

	router := httpapi.NewRouter(httpapi.Deps{
		Users:        us,
		Records:      rs,
		Realtime:     hub.NewGateway(h, hub.GatewayOptions{InsecureSkipVerify: true}),
		Metrics:      m,
		Logger:       logger.With("module", "http"),
		JWTSecret:    []byte(c.SecretKey),
		SecureCookie: c.SecureCookie,
	})

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repomanager: rm,
		userService: us,
		hub:         h,
		metrics:     m,
		router:      router,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// startHTTPServer serves until ctx is done, then shuts down gracefully.
func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "address", app.config.ListenAddr)
		errCh <- app.router.Start(app.config.ListenAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "http server failed", "error", err)
		}
		cancelFunc()
		return
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Stopping HTTP server...")
	app.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.router.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "http server shutdown failed", "error", err)
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migrations failed", "error", err)
		_ = app.db.Close()
		return
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runJanitor(ctx, app.config.TokenPurgeInterval, app.userService.PurgeExpiredTokens, app.logger, app.metrics)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close failed", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
