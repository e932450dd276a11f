// Package server initializes and runs the CollectKeeper server: it selects
// the persistence adapter, runs migrations, wires the services and the store
// manager, and serves the HTTP API with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/collectkeeper/internal/logging"
	"github.com/dmitrijs2005/collectkeeper/internal/server/config"
	"github.com/dmitrijs2005/collectkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/collectkeeper/internal/server/services"
	"github.com/dmitrijs2005/collectkeeper/internal/server/store"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB // nil with the in-memory adapter
	router http.Handler
}

// NewApp wires the application. An empty DatabaseDSN selects the in-memory
// persistence adapter; otherwise a PostgreSQL pool is opened and migrated.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	var db *sql.DB
	var repos repomanager.RepositoryManager

	if cfg.DatabaseDSN == "" {
		repos = repomanager.NewInMemoryRepositoryManager()
		logger.Info(ctx, "using in-memory persistence")
	} else {
		var err error
		db, err = sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		repos = repomanager.NewPostgresRepositoryManager()
		if err := repos.RunMigrations(ctx, db); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}

	userService := services.NewUserService(db, repos, cfg)
	mediaService := services.NewMediaService(cfg)
	storeManager := store.NewManager(db, repos, logger)

	handler := httpapi.NewHandler(userService, mediaService, storeManager, logger)
	router := httpapi.NewRouter(handler, cfg.CORSAllowedOrigin)

	return &App{config: cfg, logger: logger, db: db, router: router}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the HTTP API until the context is cancelled or a termination
// signal arrives, then shuts the server down gracefully.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.router,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	app.logger.Info(ctx, "shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if app.db != nil {
		return app.db.Close()
	}
	return nil
}
