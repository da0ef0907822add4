package app

import (
	"context"
	"fmt"
	"net"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/cas-backend/internal/config"
	httpserver "github.com/yungbote/cas-backend/internal/http"
	"github.com/yungbote/cas-backend/internal/observability"
	"github.com/yungbote/cas-backend/internal/platform/logger"
	"github.com/yungbote/cas-backend/internal/platform/shutdown"
)

type App struct {
	Log     *logger.Logger
	Cfg     *config.Config
	Clients Clients
	Server  *httpserver.Server

	shutdownTracing func(context.Context) error
}

// New builds every dependency from cfg. Nothing listens until Run.
func New(ctx context.Context, cfg *config.Config, version string) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	log, err := logger.New(cfg.Env, loggerOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if cfg.Log.DisableRedaction && cfg.IsProduction() {
		log.Warn("log.disable_redaction ignored in production")
	}

	shutdownTracing := observability.InitOTel(ctx, log, observability.OtelConfig{
		Tracing:     cfg.Tracing,
		Environment: cfg.Env,
		Version:     version,
	})

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = shutdownTracing(context.Background())
		log.Sync()
		return nil, err
	}

	serviceset := wireServices(log, cfg, clients)
	handlerset := wireHandlers(cfg, clients, serviceset, version)
	server := wireServer(log, cfg, clients, handlerset)

	if cfg.LLM.APIKey == "" {
		log.Warn("OPENAI_API_KEY not set; completion endpoints will return 500")
	}

	return &App{
		Log:             log,
		Cfg:             cfg,
		Clients:         clients,
		Server:          server,
		shutdownTracing: shutdownTracing,
	}, nil
}

// loggerOptions maps the log section onto logger options. Redaction stays on in
// production whatever the config says.
func loggerOptions(cfg *config.Config) []logger.Option {
	var opts []logger.Option
	if cfg.Log.HashSalt != "" {
		opts = append(opts, logger.WithHashSalt(cfg.Log.HashSalt))
	}
	if cfg.Log.DisableRedaction && !cfg.IsProduction() {
		opts = append(opts, logger.WithoutRedaction())
	}
	return opts
}

// Run serves HTTP until ctx is canceled or the listener fails, then drains in-flight
// requests within the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Cfg.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.Cfg.HTTP.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.Info("http server listening", "addr", ln.Addr().String())
		return a.Server.Serve(ln)
	})
	g.Go(func() error {
		<-gctx.Done()
		a.Log.Info("shutting down", "timeout", a.Cfg.HTTP.ShutdownTimeout.Duration.String())
		return shutdown.Run(a.Cfg.HTTP.ShutdownTimeout.Duration, a.Server.Shutdown)
	})

	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	_ = shutdown.Run(a.Cfg.HTTP.ShutdownTimeout.Duration,
		a.shutdownTracing,
		func(context.Context) error { return a.Clients.Close() },
	)
	if a.Log != nil {
		a.Log.Sync()
	}
}
