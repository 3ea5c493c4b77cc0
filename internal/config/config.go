package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	AuditWebhookAddress string
	JWTSecret           string
	ExpiringWindowDays  int
	AuditQueueSize      int
	AuditWorkerPool     int
	ShutdownTimeout     time.Duration
}

const (
	defaultRunAddress         = ":8080"
	defaultJWTSecret          = "change-me-in-production"
	defaultExpiringWindowDays = 30
	defaultAuditQueueSize     = 256
	defaultAuditWorkerPool    = 2
	defaultShutdownTimeout    = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		AuditWebhookAddress: getString(lookup, "AUDIT_WEBHOOK_ADDRESS", ""),
		JWTSecret:           getString(lookup, "JWT_SECRET", defaultJWTSecret),
		ExpiringWindowDays:  getInt(lookup, "EXPIRING_WINDOW_DAYS", defaultExpiringWindowDays),
		AuditQueueSize:      getInt(lookup, "AUDIT_QUEUE_SIZE", defaultAuditQueueSize),
		AuditWorkerPool:     getInt(lookup, "AUDIT_WORKER_POOL", defaultAuditWorkerPool),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("pharmatrack", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AuditWebhookAddress, "r", cfg.AuditWebhookAddress, "Audit notifier base URL (optional)")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.IntVar(&cfg.ExpiringWindowDays, "expiring-window", cfg.ExpiringWindowDays, "Days before expiry a batch counts as expiring")
	fs.IntVar(&cfg.AuditQueueSize, "audit-queue", cfg.AuditQueueSize, "Buffered audit event queue size")
	fs.IntVar(&cfg.AuditWorkerPool, "audit-workers", cfg.AuditWorkerPool, "Number of concurrent audit dispatch workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.ExpiringWindowDays <= 0 {
		cfg.ExpiringWindowDays = defaultExpiringWindowDays
	}

	if cfg.AuditQueueSize <= 0 {
		cfg.AuditQueueSize = defaultAuditQueueSize
	}

	if cfg.AuditWorkerPool <= 0 {
		cfg.AuditWorkerPool = defaultAuditWorkerPool
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// ExpiringWindow returns the near-expiry classification window as a duration.
func (c *Config) ExpiringWindow() time.Duration {
	return time.Duration(c.ExpiringWindowDays) * 24 * time.Hour
}
