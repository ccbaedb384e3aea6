// Package handler orchestrates one invocation: fetch the stored message,
// parse it, derive the channel, and post to Slack.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hrfmtzk/mail-to-slack/internal/config"
	"github.com/hrfmtzk/mail-to-slack/internal/email"
	"github.com/hrfmtzk/mail-to-slack/internal/slackbot"
	"github.com/hrfmtzk/mail-to-slack/internal/telemetry"
)

// SES delivers a verification mail when a receipt rule first becomes active.
// It is absorbed as a successful no-op rather than forwarded.
const (
	setupNotificationSender  = "Amazon Web Services <no-reply-aws@amazon.com>"
	setupNotificationSubject = "Amazon SES Setup Notification"
)

// ObjectStore fetches raw mail objects by bucket and key.
type ObjectStore interface {
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
}

// TokenSource fetches the Slack bot token.
type TokenSource interface {
	BotToken(ctx context.Context) (string, error)
}

// Notifier delivers one forwarded message.
type Notifier interface {
	Forward(ctx context.Context, channel, from, subject, body string) error
}

// Response is the invocation result reported to the platform.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Handler processes exactly one stored-mail event per invocation. The store
// and token source are process-wide and concurrency-safe; everything else is
// invocation-local.
type Handler struct {
	cfg    *config.Config
	store  ObjectStore
	tokens TokenSource
	logger *slog.Logger

	// newNotifier builds a fresh, freshly authenticated notifier per
	// invocation. Overridable in tests.
	newNotifier func(token string) Notifier
}

// New creates a Handler with the production Slack notifier.
func New(cfg *config.Config, store ObjectStore, tokens TokenSource, logger *slog.Logger) *Handler {
	h := &Handler{cfg: cfg, store: store, tokens: tokens, logger: logger}
	h.newNotifier = func(token string) Notifier {
		return slackbot.New(token, cfg.ErrorChannel, logger)
	}
	return h
}

// HandleEvent is the Lambda entrypoint. Any failure is logged with its
// context and reported to telemetry before being returned, so the platform's
// failure accounting always has a matching diagnostic trace.
func (h *Handler) HandleEvent(ctx context.Context, event events.S3Event) (Response, error) {
	resp, err := h.process(ctx, event)
	if err != nil {
		h.logger.Error("invocation failed", "error", err)
		telemetry.CaptureError(err)
		return Response{}, err
	}
	return resp, nil
}

func (h *Handler) process(ctx context.Context, event events.S3Event) (Response, error) {
	if len(event.Records) == 0 {
		return Response{}, errors.New("event contains no records")
	}
	record := event.Records[0]
	bucket := record.S3.Bucket.Name
	key := record.S3.Object.Key
	h.logger.Info("processing email", "bucket", bucket, "key", key)

	raw, err := h.store.Fetch(ctx, bucket, key)
	if err != nil {
		return Response{}, err
	}

	msg, err := email.Parse(raw)
	if err != nil {
		return Response{}, fmt.Errorf("s3://%s/%s: %w", bucket, key, err)
	}

	subject := email.DecodeHeader(msg.Subject())
	if msg.From() == setupNotificationSender && subject == setupNotificationSubject {
		h.logger.Info("skipping SES setup notification", "bucket", bucket, "key", key)
		return Response{StatusCode: http.StatusOK, Body: "Skipped setup notification"}, nil
	}

	body := msg.PlainBody()

	// A recipient outside the configured domain fails the invocation; a
	// degraded notification is not worth posting.
	channel, err := email.ChannelFromAddress(msg.To(), h.cfg.DomainName)
	if err != nil {
		return Response{}, err
	}
	h.logger.Info("target channel", "channel", channel)

	token, err := h.tokens.BotToken(ctx)
	if err != nil {
		return Response{}, err
	}

	if err := h.newNotifier(token).Forward(ctx, channel, msg.From(), subject, body); err != nil {
		return Response{}, err
	}

	h.logger.Info("posted to slack", "channel", channel)
	return Response{StatusCode: http.StatusOK, Body: "Success"}, nil
}
