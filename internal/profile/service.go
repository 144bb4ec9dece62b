// Package profile assembles the restaurant profile view from session data.
// Everything shown here arrives as side effects of sign-in and order loads;
// there is no dedicated profile fetch against the backend.
package profile

import (
	"context"

	"github.com/feastly/opsboard/internal/session"
)

// View is what the profile page renders.
type View struct {
	FullName       string `json:"full_name"`
	RestaurantName string `json:"restaurant_name"`
	Location       string `json:"location"`
	Email          string `json:"email"`
}

// Service reads the profile view out of a session.
type Service struct {
	sessions session.Store
}

// NewService wires the session capability.
func NewService(sessions session.Store) *Service {
	return &Service{sessions: sessions}
}

// View returns the profile for a signed-in session. Keys the board has not
// populated yet fall back to placeholders rather than failing.
func (s *Service) View(ctx context.Context, sessionID string) (View, error) {
	if _, err := session.Identity(ctx, s.sessions, sessionID); err != nil {
		return View{}, err
	}

	return View{
		FullName:       s.valueOr(ctx, sessionID, session.KeyUserFullName, "Unknown"),
		RestaurantName: s.valueOr(ctx, sessionID, session.KeyRestaurantName, "Unknown"),
		Location:       s.valueOr(ctx, sessionID, session.KeyRestaurantLocation, "Unknown"),
		Email:          s.valueOr(ctx, sessionID, session.KeyUserEmail, "unknown@example.com"),
	}, nil
}

func (s *Service) valueOr(ctx context.Context, sessionID, key, fallback string) string {
	value, ok, err := s.sessions.Get(ctx, sessionID, key)
	if err != nil || !ok || value == "" {
		return fallback
	}
	return value
}
