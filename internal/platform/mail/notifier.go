// Package mail provides Notifier implementations.
package mail

import (
	"context"
	"log/slog"
)

// LogNotifier is a Notifier that logs messages instead of delivering
// them. The real delivery transport lives outside this service; this
// implementation keeps local runs and wiring functional without one.
type LogNotifier struct{}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Send logs the outbound message at INFO level.
func (n *LogNotifier) Send(ctx context.Context, subject, htmlBody, to, from string) error {
	slog.InfoContext(ctx, "mail send requested",
		"subject", subject,
		"to", to,
		"from", from,
		"body_bytes", len(htmlBody),
	)
	return nil
}
