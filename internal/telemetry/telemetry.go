// Package telemetry wires optional Sentry error reporting. Without a DSN
// every function here is a no-op.
package telemetry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

var enabled bool

// Init configures Sentry when dsn is non-empty. Called once at process start.
func Init(dsn string) error {
	if dsn == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		return fmt.Errorf("init sentry: %w", err)
	}
	enabled = true
	return nil
}

// CaptureError reports err and flushes immediately, so the event is delivered
// before the execution environment is frozen after the invocation.
func CaptureError(err error) {
	if !enabled || err == nil {
		return
	}
	sentry.CaptureException(err)
	sentry.Flush(2 * time.Second)
}
