// Package server owns process bootstrap: it opens the store, runs the
// optional migration and job hooks, builds the gin engine and serves it
// until the process is told to stop.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"MediFind/config"
	"MediFind/logger"
	"MediFind/metrics"
	"MediFind/store"

	"github.com/gin-gonic/gin"
)

// Deps is what the hooks receive.
type Deps struct {
	Config  *config.Config
	Store   store.Store
	Logger  *logger.Logger
	Metrics *metrics.Metrics
}

type Options struct {
	Config *config.Config
	Logger *logger.Logger

	MetricsEnabled bool

	MigrationEnabled bool
	MigrationHandler func(ctx context.Context, deps Deps) error

	JobsEnabled bool
	JobsHandler func(ctx context.Context, deps Deps) error

	WebServerEnabled    bool
	WebServerPreHandler func(r *gin.Engine, deps Deps)
}

func GetDefaultOptions(cfg *config.Config) Options {
	return Options{
		Config:           cfg,
		MetricsEnabled:   cfg.MetricsEnabled,
		MigrationEnabled: cfg.MigrationEnabled,
		JobsEnabled:      cfg.JobsEnabled,
		WebServerEnabled: true,
	}
}

// OpenStore builds the store selected by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return store.NewMemoryStore(cfg.MongoCollection), nil
	case config.DriverMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:            cfg.MongoURI,
			Database:       cfg.MongoDatabase,
			Collection:     cfg.MongoCollection,
			ConnectTimeout: cfg.MongoConnectTimeout,
			QueryTimeout:   cfg.MongoQueryTimeout,
		})
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

var openStore = OpenStore

// NewEngine builds the gin engine with the common middleware and lets the
// pre-handler register routes.
func NewEngine(opts Options, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	if opts.WebServerPreHandler != nil {
		opts.WebServerPreHandler(r, deps)
	}
	return r
}

// Start blocks until SIGINT/SIGTERM or a fatal server error.
func Start(opts Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx, opts)
}

// Run is Start with a caller supplied lifetime.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = logger.NewLoggerClient(logger.Config{Level: cfg.LogLevel})
	}
	defer func() { _ = log.Sync() }()

	deps := Deps{Config: cfg, Logger: log}
	if opts.MetricsEnabled {
		deps.Metrics = metrics.NewMetrics(metrics.Config{
			Namespace:               "medifind",
			ServiceName:             "medifind",
			EnableDefaultCollectors: true,
		})
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	var observer store.Observer
	if deps.Metrics != nil {
		observer = deps.Metrics
	}
	deps.Store = store.Instrument(st, cfg.StoreDriver, observer)
	log.Info("store ready", nil, map[string]interface{}{
		"driver":     cfg.StoreDriver,
		"database":   cfg.MongoDatabase,
		"collection": cfg.MongoCollection,
	})
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := deps.Store.Close(closeCtx); err != nil {
			log.Error("Error closing the store", err, nil)
		}
	}()

	if opts.MigrationEnabled && opts.MigrationHandler != nil {
		if err := opts.MigrationHandler(ctx, deps); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	if opts.JobsEnabled && opts.JobsHandler != nil {
		if err := opts.JobsHandler(ctx, deps); err != nil {
			return fmt.Errorf("jobs: %w", err)
		}
	}

	if !opts.WebServerEnabled {
		<-ctx.Done()
		return nil
	}

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: NewEngine(opts, deps),
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting web server", nil, map[string]interface{}{"addr": srv.Addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down web server", nil, nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
