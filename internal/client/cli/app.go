package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/client/channel"
	"github.com/dmitrijs2005/clinicdesk/internal/client/client"
	"github.com/dmitrijs2005/clinicdesk/internal/client/config"
	"github.com/dmitrijs2005/clinicdesk/internal/client/metrics"
	"github.com/dmitrijs2005/clinicdesk/internal/client/services"
	"github.com/dmitrijs2005/clinicdesk/internal/client/session"
	"github.com/dmitrijs2005/clinicdesk/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config         *config.Config
	log            logging.Logger
	metrics        *metrics.Client
	repos          *client.Repositories
	state          *session.State
	authService    services.AuthService
	recordsService services.RecordsService
	channel        *channel.Client
	metricsServer  *http.Server
	reader         *bufio.Reader

	outMu sync.Mutex
	out   io.Writer
}

// NewApp builds the client object graph: local database, session state,
// cookie jar, request pipeline, services and the channel client.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewText(os.Stderr, c.LogLevel)
	m := metrics.New()

	repos, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	state := session.NewState(session.NewMetadataHints(repos.Metadata))

	jar, err := client.NewPersistentJar(ctx, repos.Metadata, log)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	api := client.NewHTTPClient(c.APIBaseURL, state,
		client.WithHTTPClient(&http.Client{Jar: jar}),
		client.WithLogger(log),
		client.WithMetrics(m),
	)
	as := services.NewAuthService(api, state, log, m)
	api.SetRefresher(as)

	a := &App{
		config:         c,
		log:            log,
		metrics:        m,
		repos:          repos,
		state:          state,
		authService:    as,
		recordsService: services.NewRecordsService(api),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}

	a.channel = channel.New(channel.Config{
		URL:               c.ChannelURL,
		ReconnectInterval: c.ReconnectInterval,
		Logger:            log,
		Metrics:           m,
		OnState:           a.onChannelState,
	})

	return a, nil
}

// Run performs the startup silent refresh, connects the channel and runs the
// REPL on stdin until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.close(ctx)

	a.startMetrics(ctx)

	a.authService.SilentRefresh(ctx)
	if a.isLoggedIn() {
		a.printf("Welcome back, %s\n", a.state.Username())
	}

	unsubscribe := a.subscribeEvents()
	defer unsubscribe()

	a.channel.Connect(ctx)
	defer a.channel.Disconnect()

	a.printf("Welcome to clinicdesk (type 'help' for commands)\n")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
	return nil
}

func (a *App) startMetrics(ctx context.Context) {
	if a.config.MetricsAddr == "" {
		return
	}
	a.metricsServer = &http.Server{
		Addr:              a.config.MetricsAddr,
		Handler:           a.metrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error(ctx, "metrics server failed", "addr", a.config.MetricsAddr, "error", err)
		}
	}()
}

func (a *App) close(ctx context.Context) {
	if a.metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = a.metricsServer.Shutdown(shutdownCtx)
		cancel()
	}
	if a.repos != nil {
		if err := a.repos.Close(); err != nil {
			a.log.Warn(ctx, "closing database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.state != nil && a.state.Authenticated()
}

func (a *App) getStatus() string {
	s := "guest"
	if a.isLoggedIn() {
		s = a.state.Username()
	}
	if a.channel != nil {
		s = s + " " + a.channel.State().String()
	}
	return s
}

func (a *App) onChannelState(s channel.State) {
	if s == channel.Connecting {
		return
	}
	a.printf("[channel %s]\n", s)
}

// printf writes to the app output. Channel events arrive on another
// goroutine, so writes are serialized.
func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}
