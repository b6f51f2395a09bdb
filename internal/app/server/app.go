package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"golang.org/x/exp/slog"

	"recordkeeper/internal/app/server/api"
	"recordkeeper/internal/app/server/config"
	"recordkeeper/internal/infrastructure/migration"
	"recordkeeper/internal/infrastructure/storage"
)

// App owns the storage handle and the HTTP server for one process.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	storage storage.Storage
	srv     *http.Server
}

// New applies migrations when enabled, opens storage and wires the API.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	log = log.With("component", "server")

	mg := migration.NewMigration(cfg, nil)
	if cfg.DB.AutoMigrate && mg.Supported() {
		if err := mg.Up(); err != nil {
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		log.Info("migrations applied", "driver", cfg.DB.Driver)
	}

	st, repos, err := OpenStorage(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:     cfg,
		log:     log,
		storage: st,
		srv: &http.Server{
			Addr:         cfg.Server.RunAddress,
			Handler:      api.New(repos, st, log),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}, nil
}

// Run listens on the configured address until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Server.RunAddress)
	if err != nil {
		_ = a.storage.Close()
		return fmt.Errorf("listen %s: %w", a.cfg.Server.RunAddress, err)
	}
	return a.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then drains in-flight
// requests within the shutdown timeout and closes storage.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server started", "address", ln.Addr().String(), "driver", a.cfg.DB.Driver)
		errCh <- a.srv.Serve(ln)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	a.log.Info("shutting down server")
	err := a.srv.Shutdown(shutdownCtx)
	if errors.Is(serveErr, http.ErrServerClosed) {
		serveErr = nil
	}

	return errors.Join(serveErr, err, a.storage.Close())
}
