// Package storage fetches stored mail objects from S3.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client wraps the S3 client for raw object reads.
type Client struct {
	s3 *s3.Client
}

// NewFromConfig creates a Client from a loaded AWS config.
func NewFromConfig(cfg aws.Config) *Client {
	return &Client{s3: s3.NewFromConfig(cfg)}
}

// Fetch returns the raw bytes of the object at bucket/key. Failures are not
// retried here; the platform owns retry policy for failed invocations.
func (c *Client) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}
