// post-local-email runs a local .eml file through the same parse/derive/post
// pipeline as the Lambda, for debugging receipt rules and channel naming
// without a deployment. Reads DOMAIN_NAME, SLACK_ERROR_CHANNEL and
// SLACK_BOT_TOKEN from the environment (a .env file is honored).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/hrfmtzk/mail-to-slack/internal/email"
	"github.com/hrfmtzk/mail-to-slack/internal/slackbot"
)

func main() {
	file := flag.String("file", "", "path to a raw .eml file")
	dryRun := flag.Bool("dry-run", false, "parse and print, do not post to Slack")
	flag.Parse()

	if *file == "" {
		fmt.Println("Usage: post-local-email -file message.eml [-dry-run]")
		os.Exit(1)
	}

	// Optional .env for local runs; absence is fine.
	_ = godotenv.Load()

	domain := os.Getenv("DOMAIN_NAME")
	if domain == "" {
		fmt.Println("DOMAIN_NAME is required")
		os.Exit(1)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		fmt.Printf("read %s: %v\n", *file, err)
		os.Exit(1)
	}

	msg, err := email.Parse(raw)
	if err != nil {
		fmt.Printf("parse %s: %v\n", *file, err)
		os.Exit(1)
	}

	subject := email.DecodeHeader(msg.Subject())
	body := msg.PlainBody()

	channel, err := email.ChannelFromAddress(msg.To(), domain)
	if err != nil {
		fmt.Printf("derive channel: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("From:    %s\n", msg.From())
	fmt.Printf("Subject: %s\n", subject)
	fmt.Printf("Channel: #%s\n", channel)
	fmt.Printf("Body:    %d bytes\n", len(body))

	if *dryRun {
		fmt.Println("\nDry run, nothing posted.")
		return
	}

	token := os.Getenv("SLACK_BOT_TOKEN")
	if token == "" {
		fmt.Println("SLACK_BOT_TOKEN is required unless -dry-run is set")
		os.Exit(1)
	}
	errorChannel := os.Getenv("SLACK_ERROR_CHANNEL")
	if errorChannel == "" {
		fmt.Println("SLACK_ERROR_CHANNEL is required unless -dry-run is set")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	notifier := slackbot.New(token, errorChannel, logger)
	if err := notifier.Forward(context.Background(), channel, msg.From(), subject, body); err != nil {
		fmt.Printf("post failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Posted to #%s\n", channel)
}
