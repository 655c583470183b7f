// Package config loads process configuration from the environment, with an
// optional .env file on top.
package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Host     string
	Port     string
	LogLevel string

	StoreDriver         string
	MongoURI            string
	MongoDatabase       string
	MongoCollection     string
	MongoConnectTimeout time.Duration
	MongoQueryTimeout   time.Duration

	JobsEnabled      bool
	MonitorSchedule  string
	MigrationEnabled bool
	MetricsEnabled   bool

	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// Addr is the listen address of the web server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Load reads .env (when present) and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Error in loading the ENV")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Host:            getEnv("HOST", "0.0.0.0"),
		Port:            getEnv("PORT", "5000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoCollection: getEnv("MONGO_COLLECTION", "medicineDB"),
		MonitorSchedule: getEnv("MONITOR_SCHEDULE", "@every 15m"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
	}

	var err error
	if cfg.MongoConnectTimeout, err = getDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.MongoQueryTimeout, err = getDuration("MONGO_QUERY_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.JobsEnabled, err = getBool("JOBS_ENABLED", true); err != nil {
		return nil, err
	}
	if cfg.MigrationEnabled, err = getBool("MIGRATIONS_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.MetricsEnabled, err = getBool("METRICS_ENABLED", true); err != nil {
		return nil, err
	}

	switch cfg.StoreDriver {
	case DriverMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI is required for the %s driver", DriverMongo)
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	cfg.MongoDatabase = getEnv("MONGO_DATABASE", databaseFromURI(cfg.MongoURI))
	return cfg, nil
}

// databaseFromURI returns the database named in the URI path, or "test" the
// way the mongo shell and drivers default.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "test"
	}
	name := strings.Trim(u.Path, "/")
	if name == "" {
		return "test"
	}
	return name
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
