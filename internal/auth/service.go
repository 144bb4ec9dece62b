package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/feastly/opsboard/internal/session"
)

// Service handles sign-in, sign-out and sign-up applications. On login it
// mints a session id and seeds the session store with the profile keys the
// board and profile views read.
type Service struct {
	authenticator Authenticator
	sessions      session.Store
	notifier      Notifier
	logger        *slog.Logger
}

// NewService wires required dependencies.
func NewService(authenticator Authenticator, sessions session.Store, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		authenticator: authenticator,
		sessions:      sessions,
		notifier:      notifier,
		logger:        logger,
	}
}

// Login verifies credentials against the backend and, on success, creates a
// session holding the profile's denormalized display data.
func (s *Service) Login(ctx context.Context, email, password string) (string, Profile, error) {
	profile, err := s.authenticator.Login(ctx, email, password)
	if err != nil {
		return "", Profile{}, err
	}

	sessionID := uuid.NewString()
	seed := map[string]string{
		session.KeyUserID:       profile.ID,
		session.KeyUserEmail:    profile.Email,
		session.KeyUserFullName: profile.FullName,
		session.KeyUserRating:   profile.Rating,
	}
	for key, value := range seed {
		if err := s.sessions.Set(ctx, sessionID, key, value); err != nil {
			return "", Profile{}, fmt.Errorf("seed session: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "restaurant signed in", "restaurant_id", profile.ID)
	return sessionID, profile, nil
}

// Logout drops every key held for the session.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Apply validates a sign-up application and forwards it to the platform team.
func (s *Service) Apply(ctx context.Context, application Application) error {
	if err := application.Validate(); err != nil {
		return err
	}

	if err := s.notifier.SendApplication(ctx, application); err != nil {
		return fmt.Errorf("forward application: %w", err)
	}

	s.logger.InfoContext(ctx, "sign-up application forwarded", "restaurant", application.Name)
	return nil
}
