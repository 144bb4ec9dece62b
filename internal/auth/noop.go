package auth

import (
	"context"
	"log/slog"
)

// NoopNotifier logs applications without sending them anywhere. Useful for
// local dev before SMTP is configured.
type NoopNotifier struct{}

// NewNoopNotifier returns a new no-op application notifier.
func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

func (n *NoopNotifier) SendApplication(_ context.Context, application Application) error {
	slog.Debug("application::received", "restaurant", application.Name, "email", application.Email)
	return nil
}
