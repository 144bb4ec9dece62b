package session

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotReady is returned when an operation runs before its session
// precondition (a signed-in restaurant identity) is available. Callers are
// expected to send the user back through sign-in.
var ErrNotReady = errors.New("session identity not available")

// Well-known keys shared between the auth, board and profile components. The
// board requires KeyUserID before any load; the rest is denormalized display
// data written as side effects of login and order loads.
const (
	KeyUserID             = "userId"
	KeyUserEmail          = "userEmail"
	KeyUserFullName       = "userFullName"
	KeyUserRating         = "userRating"
	KeyRestaurantName     = "restaurantName"
	KeyRestaurantLocation = "restaurantLocation"
)

// Store is the opaque key-value capability a signed-in session reads and
// writes through. Implementations namespace values per session id;
// last-writer-wins, no locking.
type Store interface {
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID, key string) error

	// Clear drops every key held for the session. Used on logout.
	Clear(ctx context.Context, sessionID string) error
}

// Identity reads the signed-in restaurant id for a session. A missing or
// empty value yields ErrNotReady.
func Identity(ctx context.Context, store Store, sessionID string) (string, error) {
	id, ok, err := store.Get(ctx, sessionID, KeyUserID)
	if err != nil {
		return "", fmt.Errorf("read session identity: %w", err)
	}
	if !ok || id == "" {
		return "", ErrNotReady
	}
	return id, nil
}
