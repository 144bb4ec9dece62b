package ports

import (
	"context"
	"errors"

	"github.com/feastly/opsboard/internal/board/domain"
)

// OrderService abstracts the remote restaurant backend that owns all order
// state. The board never creates or deletes orders; it reads the full
// collection for one restaurant and patches a single status field.
type OrderService interface {
	ListOrders(ctx context.Context, restaurantID string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status domain.Status) error
}

var (
	// ErrTransport covers network failures, non-2xx responses and unparseable
	// payloads from the remote backend.
	ErrTransport = errors.New("order service unavailable")

	// ErrNoPendingAction is returned when a confirm or decline refers to an
	// action that is no longer the board's current pending action.
	ErrNoPendingAction = errors.New("no matching pending action")

	// ErrTransitionInFlight rejects a second transition on an order whose
	// previous transition has not resolved yet.
	ErrTransitionInFlight = errors.New("transition already in flight for order")

	// ErrOrderTerminal rejects transition requests against orders already
	// cancelled or completed.
	ErrOrderTerminal = errors.New("order is in a terminal status")

	// ErrOrderNotFound is returned when a transition targets an order id the
	// board does not hold.
	ErrOrderNotFound = errors.New("order not found")
)
