package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/feastly/opsboard/internal/board/domain"
	"github.com/feastly/opsboard/internal/board/ports"
	"github.com/feastly/opsboard/internal/session"
)

// PendingAction records a user-requested status transition awaiting explicit
// confirmation. At most one exists per board; requesting a new one discards
// any prior unconfirmed action.
type PendingAction struct {
	ID         string
	OrderID    int64
	Transition domain.Transition
}

// Board holds the authoritative in-memory order list for one signed-in
// restaurant session, derives filtered views and mediates status transitions
// through a confirmation gate. All dependencies are injected; the board never
// reaches for ambient state.
type Board struct {
	sessionID string
	sessions  session.Store
	orders    ports.OrderService
	events    ports.EventBus
	logger    *slog.Logger

	loadGroup singleflight.Group

	mu       sync.Mutex
	list     []domain.Order
	pending  *PendingAction
	inFlight map[int64]struct{}
}

// NewBoard constructs a board bound to one session identity.
func NewBoard(sessionID string, sessions session.Store, orders ports.OrderService, events ports.EventBus, logger *slog.Logger) *Board {
	return &Board{
		sessionID: sessionID,
		sessions:  sessions,
		orders:    orders,
		events:    events,
		logger:    logger,
		inFlight:  make(map[int64]struct{}),
	}
}

// Load fetches the restaurant's orders and replaces the in-memory list
// wholesale. The restaurant name and address from the first order are written
// into the session store so the profile view can render without its own
// fetch. On failure the list is cleared rather than left stale. Concurrent
// loads on the same board collapse into a single remote call.
func (b *Board) Load(ctx context.Context) ([]domain.Order, error) {
	restaurantID, err := session.Identity(ctx, b.sessions, b.sessionID)
	if err != nil {
		return nil, err
	}

	result, err, _ := b.loadGroup.Do("load", func() (any, error) {
		orders, err := b.orders.ListOrders(ctx, restaurantID)
		if err != nil {
			b.mu.Lock()
			b.list = nil
			b.mu.Unlock()
			return nil, fmt.Errorf("%w: %v", ports.ErrTransport, err)
		}

		b.mu.Lock()
		b.list = orders
		b.mu.Unlock()

		if len(orders) > 0 {
			b.rememberRestaurant(ctx, orders[0].Restaurant)
		}
		return orders, nil
	})
	if err != nil {
		return nil, err
	}

	return snapshot(result.([]domain.Order)), nil
}

func (b *Board) rememberRestaurant(ctx context.Context, r domain.Restaurant) {
	if err := b.sessions.Set(ctx, b.sessionID, session.KeyRestaurantName, r.Name); err != nil {
		b.logger.WarnContext(ctx, "failed to store restaurant name", "error", err)
	}
	if err := b.sessions.Set(ctx, b.sessionID, session.KeyRestaurantLocation, r.Address); err != nil {
		b.logger.WarnContext(ctx, "failed to store restaurant location", "error", err)
	}
}

// FilteredView returns the orders matching the filter in their original
// server-provided order. Pure with respect to board state; safe to call
// before any load has completed.
func (b *Board) FilteredView(filter domain.Filter) []domain.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	status, selective := filter.Status()
	if !selective {
		return snapshot(b.list)
	}

	result := make([]domain.Order, 0)
	for _, order := range b.list {
		if order.Status == status {
			result = append(result, order)
		}
	}
	return result
}

// RequestTransition records the intent to cancel or complete an order. It
// does not touch the remote service. Any prior unconfirmed action is
// discarded; transitions against terminal orders are rejected.
func (b *Board) RequestTransition(orderID int64, transition domain.Transition) (PendingAction, error) {
	if _, err := transition.Target(); err != nil {
		return PendingAction{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	order, ok := b.find(orderID)
	if !ok {
		return PendingAction{}, ports.ErrOrderNotFound
	}
	if order.Status.Terminal() {
		return PendingAction{}, ports.ErrOrderTerminal
	}

	action := PendingAction{
		ID:         uuid.NewString(),
		OrderID:    orderID,
		Transition: transition,
	}
	b.pending = &action
	return action, nil
}

// Confirm applies a previously requested transition: one remote update call,
// then a local patch of the matching order on success. The pending action is
// cleared on both outcomes; a failed confirm leaves the list untouched and
// the user must re-request to retry. A second confirm for the same order
// while one is outstanding is rejected.
func (b *Board) Confirm(ctx context.Context, action PendingAction) error {
	target, err := action.Transition.Target()
	if err != nil {
		return err
	}

	b.mu.Lock()
	if b.pending == nil || b.pending.ID != action.ID {
		b.mu.Unlock()
		return ports.ErrNoPendingAction
	}
	b.pending = nil

	if _, busy := b.inFlight[action.OrderID]; busy {
		b.mu.Unlock()
		return ports.ErrTransitionInFlight
	}
	b.inFlight[action.OrderID] = struct{}{}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.inFlight, action.OrderID)
		b.mu.Unlock()
	}()

	if err := b.orders.UpdateOrderStatus(ctx, action.OrderID, target); err != nil {
		b.logger.ErrorContext(ctx, "order status update failed",
			"order_id", action.OrderID,
			"transition", string(action.Transition),
			"error", err,
		)
		return fmt.Errorf("%w: %v", ports.ErrTransport, err)
	}

	b.mu.Lock()
	for i := range b.list {
		if b.list[i].ID == action.OrderID {
			b.list[i].Status = target
			break
		}
	}
	b.mu.Unlock()

	if err := b.events.PublishStatusChanged(ctx, action.OrderID, target); err != nil {
		b.logger.WarnContext(ctx, "failed to publish status change",
			"order_id", action.OrderID,
			"error", err,
		)
	}

	b.logger.InfoContext(ctx, "order status updated",
		"order_id", action.OrderID,
		"status", target.Label(),
	)
	return nil
}

// Pending returns the current unconfirmed action, if any.
func (b *Board) Pending() (PendingAction, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == nil {
		return PendingAction{}, false
	}
	return *b.pending, true
}

// Decline discards a pending action without any remote call or state change.
// Actions that are no longer current are ignored.
func (b *Board) Decline(action PendingAction) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending != nil && b.pending.ID == action.ID {
		b.pending = nil
	}
}

func (b *Board) find(orderID int64) (domain.Order, bool) {
	for _, order := range b.list {
		if order.ID == orderID {
			return order, true
		}
	}
	return domain.Order{}, false
}

func snapshot(orders []domain.Order) []domain.Order {
	out := make([]domain.Order, len(orders))
	copy(out, orders)
	return out
}
