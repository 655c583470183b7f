package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"MediFind/config"
	"MediFind/logger"
	"MediFind/metrics"
	"MediFind/server"
	"MediFind/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_FullCoverage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	isTest = true
	defer func() { isTest = false }()

	var capturedOpts server.Options

	origStart, origLoad := startServer, loadConfig
	defer func() { startServer, loadConfig = origStart, origLoad }()
	startServer = func(opts server.Options) error {
		capturedOpts = opts
		return nil
	}
	loadConfig = func() (*config.Config, error) {
		return &config.Config{
			StoreDriver:     config.DriverMemory,
			MongoCollection: "medicineDB",
			MonitorSchedule: "@every 1h",
			CORSOrigins:     []string{"*"},
			JobsEnabled:     true,
		}, nil
	}

	require.NoError(t, run())
	assert.False(t, capturedOpts.JobsEnabled)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	deps := server.Deps{
		Config:  capturedOpts.Config,
		Store:   store.NewMemoryStore("medicineDB"),
		Logger:  logger.Nop(),
		Metrics: metrics.NewMetrics(metrics.Config{ServiceName: "test"}),
	}

	// execute all captured handlers
	require.NoError(t, capturedOpts.JobsHandler(ctx, deps))
	require.NoError(t, capturedOpts.MigrationHandler(ctx, deps))

	r := gin.New()
	capturedOpts.WebServerPreHandler(r, deps)

	for _, target := range []string{"/health", "/metrics", "/api/medicines/"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusOK, w.Code, target)
	}
}
