// Package slackbot posts forwarded mail to Slack, rerouting delivery
// failures to a fixed error-reporting channel.
package slackbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"
)

// Poster is the subset of the Slack client used by the notifier.
type Poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Notifier posts to Slack with a freshly authenticated client. A new client
// is built per invocation from a just-fetched token, so a rotated token takes
// effect on the very next message and no stale credential outlives an
// invocation.
type Notifier struct {
	client       Poster
	errorChannel string
	logger       *slog.Logger
}

// New builds a Notifier around a new Slack client for the given token.
func New(token, errorChannel string, logger *slog.Logger) *Notifier {
	return NewWithPoster(slack.New(token), errorChannel, logger)
}

// NewWithPoster builds a Notifier around an existing client. Used by tests
// and the local tool's dry-run mode.
func NewWithPoster(client Poster, errorChannel string, logger *slog.Logger) *Notifier {
	return &Notifier{client: client, errorChannel: errorChannel, logger: logger}
}

// Forward posts the formatted message to channel. When the destination
// rejects the post (unknown channel, bot not invited, rate limit), the
// failure is reported to the error channel instead of failing the
// invocation; only a failure of that second post is returned.
func (n *Notifier) Forward(ctx context.Context, channel, from, subject, body string) error {
	text := fmt.Sprintf("*From:* %s\n*Subject:* %s\n\n%s", from, subject, body)
	_, _, err := n.client.PostMessageContext(ctx, channel, slack.MsgOptionText(text, false))
	if err == nil {
		return nil
	}

	reason := postErrorReason(err)
	n.logger.Error("slack post failed", "channel", channel, "error", reason)

	report := fmt.Sprintf("*Error posting to channel:* #%s\n*Error:* %s", channel, reason)
	if _, _, err := n.client.PostMessageContext(ctx, n.errorChannel, slack.MsgOptionText(report, false)); err != nil {
		return fmt.Errorf("post error report to #%s: %w", n.errorChannel, err)
	}
	return nil
}

// postErrorReason extracts the machine-readable Web API reason
// ("channel_not_found", "not_in_channel", ...) when the error carries one.
func postErrorReason(err error) string {
	var apiErr slack.SlackErrorResponse
	if errors.As(err, &apiErr) {
		return apiErr.Err
	}
	return err.Error()
}
