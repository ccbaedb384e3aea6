// Package secrets retrieves the Slack bot token from Secrets Manager.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// Client fetches a named secret holding the bot token.
type Client struct {
	sm         *secretsmanager.Client
	secretName string
}

// NewFromConfig creates a Client from a loaded AWS config.
func NewFromConfig(cfg aws.Config, secretName string) *Client {
	return &Client{sm: secretsmanager.NewFromConfig(cfg), secretName: secretName}
}

// BotToken fetches and decodes the bot token. The secret value is JSON with a
// SLACK_BOT_TOKEN field. The token goes to the caller only and must never be
// logged.
func (c *Client) BotToken(ctx context.Context) (string, error) {
	out, err := c.sm.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(c.secretName),
	})
	if err != nil {
		return "", fmt.Errorf("get secret %s: %w", c.secretName, err)
	}

	var secret struct {
		SlackBotToken string `json:"SLACK_BOT_TOKEN"`
	}
	if err := json.Unmarshal([]byte(aws.ToString(out.SecretString)), &secret); err != nil {
		return "", fmt.Errorf("decode secret %s: %w", c.secretName, err)
	}
	if secret.SlackBotToken == "" {
		return "", fmt.Errorf("secret %s is missing SLACK_BOT_TOKEN", c.secretName)
	}
	return secret.SlackBotToken, nil
}
