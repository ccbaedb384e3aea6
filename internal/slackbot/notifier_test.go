package slackbot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/slack-go/slack"
)

type postCall struct {
	channel string
	text    string
}

// fakePoster records posts and fails configured channels once.
type fakePoster struct {
	calls    []postCall
	failures map[string]error
}

func (f *fakePoster) PostMessageContext(ctx context.Context, channel string, options ...slack.MsgOption) (string, string, error) {
	_, values, err := slack.UnsafeApplyMsgOptions("test-token", channel, "https://slack.com/api/", options...)
	if err != nil {
		return "", "", err
	}
	f.calls = append(f.calls, postCall{channel: channel, text: values.Get("text")})
	if err := f.failures[channel]; err != nil {
		delete(f.failures, channel)
		return "", "", err
	}
	return channel, "1234567890.123456", nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestForward_PostsFormattedMessage(t *testing.T) {
	poster := &fakePoster{}
	n := NewWithPoster(poster, "email-errors", testLogger())

	err := n.Forward(context.Background(), "general", "Sender <s@x.com>", "Test Subject", "the body")
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if len(poster.calls) != 1 {
		t.Fatalf("expected 1 post, got %d", len(poster.calls))
	}
	call := poster.calls[0]
	if call.channel != "general" {
		t.Errorf("posted to %q, want %q", call.channel, "general")
	}
	want := "*From:* Sender <s@x.com>\n*Subject:* Test Subject\n\nthe body"
	if call.text != want {
		t.Errorf("text = %q, want %q", call.text, want)
	}
}

func TestForward_DeliveryFailureRerouted(t *testing.T) {
	poster := &fakePoster{failures: map[string]error{
		"missing": slack.SlackErrorResponse{Err: "channel_not_found"},
	}}
	n := NewWithPoster(poster, "email-errors", testLogger())

	err := n.Forward(context.Background(), "missing", "s@x.com", "subj", "body")
	if err != nil {
		t.Fatalf("primary delivery failure must not propagate: %v", err)
	}
	if len(poster.calls) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(poster.calls))
	}
	report := poster.calls[1]
	if report.channel != "email-errors" {
		t.Errorf("report went to %q, want %q", report.channel, "email-errors")
	}
	want := "*Error posting to channel:* #missing\n*Error:* channel_not_found"
	if report.text != want {
		t.Errorf("report text = %q, want %q", report.text, want)
	}
}

func TestForward_SecondaryFailurePropagates(t *testing.T) {
	poster := &fakePoster{failures: map[string]error{
		"missing":      slack.SlackErrorResponse{Err: "channel_not_found"},
		"email-errors": slack.SlackErrorResponse{Err: "not_in_channel"},
	}}
	n := NewWithPoster(poster, "email-errors", testLogger())

	err := n.Forward(context.Background(), "missing", "s@x.com", "subj", "body")
	if err == nil {
		t.Fatal("expected error when the error-channel post also fails")
	}
	if !strings.Contains(err.Error(), "email-errors") {
		t.Errorf("error %q does not name the error channel", err)
	}
}

func TestPostErrorReason(t *testing.T) {
	apiErr := slack.SlackErrorResponse{Err: "channel_not_found"}
	if got := postErrorReason(apiErr); got != "channel_not_found" {
		t.Errorf("got %q, want %q", got, "channel_not_found")
	}
	plain := errors.New("connection reset")
	if got := postErrorReason(plain); got != "connection reset" {
		t.Errorf("got %q, want %q", got, "connection reset")
	}
}
