package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds service settings for the serve and watch surfaces,
// populated from SYNACK_* environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// ArchivePath is the SQLite database for decoded reports. Empty
	// disables archiving.
	ArchivePath string

	// RetentionMaxAge is how long archived reports are kept;
	// RetentionSchedule is the cron expression for the pruning job.
	RetentionMaxAge   time.Duration
	RetentionSchedule string

	// WatchDebounce coalesces rapid file-change bursts from the ingest
	// watcher into one decode pass.
	WatchDebounce time.Duration
}

// Load reads configuration from environment variables, applying
// defaults where unset.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:          envOrDefault("SYNACK_HTTP_ADDR", ":8080"),
		LogLevel:          envOrDefault("SYNACK_LOG_LEVEL", "info"),
		LogFormat:         envOrDefault("SYNACK_LOG_FORMAT", "json"),
		ArchivePath:       os.Getenv("SYNACK_ARCHIVE_PATH"),
		RetentionSchedule: envOrDefault("SYNACK_RETENTION_SCHEDULE", "0 3 * * *"),
	}

	var err error
	if cfg.ShutdownTimeout, err = envDuration("SYNACK_SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RetentionMaxAge, err = envDuration("SYNACK_RETENTION_MAX_AGE", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.WatchDebounce, err = envDuration("SYNACK_WATCH_DEBOUNCE", 500*time.Millisecond); err != nil {
		return nil, err
	}

	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid SYNACK_LOG_FORMAT %q (json or text)", cfg.LogFormat)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: want a positive duration", key, v)
	}
	return d, nil
}
