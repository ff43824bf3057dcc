package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	GinMode         string
	LogLevel        string
	BackendURL      string
	UpstreamTimeout time.Duration
	RecheckInterval time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// Load reads .env if present (not fatal if missing) and then the process
// environment. Variables already set in the environment win over .env.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		Port:       getenv("PORT", "8080"),
		GinMode:    getenv("GIN_MODE", "debug"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		BackendURL: os.Getenv("BACKEND_URL"),
	}

	var err error
	if cfg.UpstreamTimeout, err = seconds("UPSTREAM_TIMEOUT_SECONDS", 10); err != nil {
		return Config{}, err
	}
	if cfg.RecheckInterval, err = seconds("RECHECK_INTERVAL_SECONDS", 0); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = seconds("SHUTDOWN_TIMEOUT_SECONDS", 15); err != nil {
		return Config{}, err
	}

	for _, o := range strings.Split(getenv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func seconds(key string, def int) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(def) * time.Second, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return time.Duration(n) * time.Second, nil
}
