// Package events publishes order lifecycle notifications for downstream
// consumers such as courier dispatch.
package events

import (
	"context"
	"log/slog"

	"github.com/feastly/opsboard/internal/board/domain"
)

// NoopEventBus logs status changes without sending them anywhere. Used when
// no broker is configured.
type NoopEventBus struct{}

// NewNoopEventBus returns a new no-op event publisher.
func NewNoopEventBus() *NoopEventBus {
	return &NoopEventBus{}
}

func (n *NoopEventBus) PublishStatusChanged(_ context.Context, orderID int64, status domain.Status) error {
	slog.Debug("event::order_status_changed", "order_id", orderID, "status", status.Label())
	return nil
}
