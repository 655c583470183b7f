package main

import (
	"context"
	"log"

	"MediFind/config"
	"MediFind/jobs"
	"MediFind/logger"
	"MediFind/migrations"
	"MediFind/routes"
	"MediFind/server"
	"MediFind/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	startServer = server.Start
	loadConfig  = config.Load
	isTest      = false
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	appLogger := logger.NewLoggerClient(logger.Config{Level: cfg.LogLevel})

	options := server.GetDefaultOptions(cfg)
	options.Logger = appLogger
	options.JobsEnabled = cfg.JobsEnabled && !isTest

	options.MigrationHandler = func(ctx context.Context, deps server.Deps) error {
		mongoStore, ok := store.AsMongo(deps.Store)
		if !ok {
			deps.Logger.Info("migrations skipped for driver", nil, map[string]interface{}{"driver": deps.Config.StoreDriver})
			return nil
		}
		_, err := migrations.BackfillTextDefaults(ctx, mongoStore.Collection(), deps.Logger)
		return err
	}

	options.JobsHandler = func(ctx context.Context, deps server.Deps) error {
		var gauge jobs.DocumentGauge
		if deps.Metrics != nil {
			gauge = deps.Metrics
		}
		_, err := jobs.StartCollectionMonitor(ctx, deps.Config.MonitorSchedule, deps.Store, deps.Logger, gauge)
		return err
	}

	options.WebServerPreHandler = func(r *gin.Engine, deps server.Deps) {
		r.Use(cors.New(cors.Config{
			AllowOrigins: deps.Config.CORSOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		}))
		routes.Routes(r, deps.Store, deps.Logger, deps.Metrics)
	}

	return startServer(options)
}
