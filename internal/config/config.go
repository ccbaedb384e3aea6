package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Config holds the function configuration, read from the Lambda environment
// once at process start.
type Config struct {
	DomainName   string     // domain inbound mail is accepted for
	SecretName   string     // Secrets Manager secret holding the Slack bot token
	ErrorChannel string     // channel that receives delivery-failure reports
	LogLevel     slog.Level // parsed from LOG_LEVEL, defaults to info
	SentryDSN    string     // optional; empty leaves telemetry disabled
}

// FromEnv loads configuration from environment variables.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DomainName:   os.Getenv("DOMAIN_NAME"),
		SecretName:   os.Getenv("SLACK_BOT_TOKEN_SECRET_NAME"),
		ErrorChannel: os.Getenv("SLACK_ERROR_CHANNEL"),
		SentryDSN:    os.Getenv("SENTRY_DSN"),
	}

	level, err := parseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	// Validate required fields
	if cfg.DomainName == "" {
		return nil, fmt.Errorf("DOMAIN_NAME is required")
	}
	if cfg.SecretName == "" {
		return nil, fmt.Errorf("SLACK_BOT_TOKEN_SECRET_NAME is required")
	}
	if cfg.ErrorChannel == "" {
		return nil, fmt.Errorf("SLACK_ERROR_CHANNEL is required")
	}

	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown LOG_LEVEL %q", s)
}
