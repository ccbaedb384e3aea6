package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/hrfmtzk/mail-to-slack/internal/config"
	"github.com/hrfmtzk/mail-to-slack/internal/handler"
	"github.com/hrfmtzk/mail-to-slack/internal/secrets"
	"github.com/hrfmtzk/mail-to-slack/internal/storage"
	"github.com/hrfmtzk/mail-to-slack/internal/telemetry"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	if err := telemetry.Init(cfg.SentryDSN); err != nil {
		// Telemetry is optional; a bad DSN should not block mail delivery.
		logger.Warn("telemetry disabled", "error", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	// Process-wide clients, reused across warm invocations. The Slack
	// client is deliberately not here: it is rebuilt per invocation from a
	// freshly fetched token.
	store := storage.NewFromConfig(awsCfg)
	tokens := secrets.NewFromConfig(awsCfg, cfg.SecretName)

	h := handler.New(cfg, store, tokens, logger)
	lambda.Start(h.HandleEvent)
}
