package ports

import (
	"context"

	"github.com/feastly/opsboard/internal/board/domain"
)

// EventBus publishes order lifecycle notifications for downstream consumers
// (courier dispatch, customer notifications). Publishing happens after the
// remote backend has acknowledged a transition.
type EventBus interface {
	PublishStatusChanged(ctx context.Context, orderID int64, status domain.Status) error
}
