package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/feastly/opsboard/internal/auth"
	"github.com/feastly/opsboard/internal/session"
	"github.com/feastly/opsboard/internal/session/memory"
)

type fakeAuthenticator struct {
	profile auth.Profile
	err     error
}

func (f *fakeAuthenticator) Login(_ context.Context, _, _ string) (auth.Profile, error) {
	if f.err != nil {
		return auth.Profile{}, f.err
	}
	return f.profile, nil
}

type recordingNotifier struct {
	applications []auth.Application
	err          error
}

func (r *recordingNotifier) SendApplication(_ context.Context, application auth.Application) error {
	if r.err != nil {
		return r.err
	}
	r.applications = append(r.applications, application)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLogin(t *testing.T) {
	t.Run("seeds the session with profile keys", func(t *testing.T) {
		sessions := memory.NewStore()
		authenticator := &fakeAuthenticator{profile: auth.Profile{
			ID:       "rest-1",
			Email:    "owner@example.com",
			FullName: "Olive Owner",
			Rating:   "4.5",
		}}
		service := auth.NewService(authenticator, sessions, &recordingNotifier{}, discardLogger())

		sessionID, profile, err := service.Login(context.Background(), "owner@example.com", "secret")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if sessionID == "" {
			t.Fatal("Login() returned empty session id")
		}
		if profile.ID != "rest-1" {
			t.Errorf("profile.ID = %s, want rest-1", profile.ID)
		}

		want := map[string]string{
			session.KeyUserID:       "rest-1",
			session.KeyUserEmail:    "owner@example.com",
			session.KeyUserFullName: "Olive Owner",
			session.KeyUserRating:   "4.5",
		}
		for key, wantValue := range want {
			value, ok, err := sessions.Get(context.Background(), sessionID, key)
			if err != nil {
				t.Fatalf("Get(%s) error = %v", key, err)
			}
			if !ok || value != wantValue {
				t.Errorf("session %s = %q (present=%t), want %q", key, value, ok, wantValue)
			}
		}
	})

	t.Run("distinct session ids per login", func(t *testing.T) {
		sessions := memory.NewStore()
		authenticator := &fakeAuthenticator{profile: auth.Profile{ID: "rest-1"}}
		service := auth.NewService(authenticator, sessions, &recordingNotifier{}, discardLogger())

		first, _, err := service.Login(context.Background(), "owner@example.com", "secret")
		if err != nil {
			t.Fatalf("first Login() error = %v", err)
		}
		second, _, err := service.Login(context.Background(), "owner@example.com", "secret")
		if err != nil {
			t.Fatalf("second Login() error = %v", err)
		}
		if first == second {
			t.Errorf("both logins produced session id %s", first)
		}
	})

	t.Run("rejected credentials pass through", func(t *testing.T) {
		sessions := memory.NewStore()
		authenticator := &fakeAuthenticator{err: auth.ErrInvalidCredentials}
		service := auth.NewService(authenticator, sessions, &recordingNotifier{}, discardLogger())

		sessionID, _, err := service.Login(context.Background(), "owner@example.com", "wrong")
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
		}
		if sessionID != "" {
			t.Errorf("session id = %q, want empty", sessionID)
		}
	})
}

func TestLogout(t *testing.T) {
	sessions := memory.NewStore()
	authenticator := &fakeAuthenticator{profile: auth.Profile{ID: "rest-1", Email: "owner@example.com"}}
	service := auth.NewService(authenticator, sessions, &recordingNotifier{}, discardLogger())

	sessionID, _, err := service.Login(context.Background(), "owner@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := service.Logout(context.Background(), sessionID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if _, ok, _ := sessions.Get(context.Background(), sessionID, session.KeyUserID); ok {
		t.Error("session keys survived logout")
	}
}

func TestApply(t *testing.T) {
	valid := auth.Application{
		Name:        "The Culinary Spot",
		Address:     "123 Foodie Lane",
		PhoneNumber: "1234567890",
		Email:       "owner@example.com",
	}

	t.Run("forwards a valid application", func(t *testing.T) {
		notifier := &recordingNotifier{}
		service := auth.NewService(&fakeAuthenticator{}, memory.NewStore(), notifier, discardLogger())

		if err := service.Apply(context.Background(), valid); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if len(notifier.applications) != 1 || notifier.applications[0] != valid {
			t.Errorf("forwarded applications = %+v", notifier.applications)
		}
	})

	t.Run("rejects incomplete applications", func(t *testing.T) {
		tests := []struct {
			name        string
			application auth.Application
		}{
			{"missing email", auth.Application{Name: "x", Address: "a", PhoneNumber: "1"}},
			{"missing address", auth.Application{Name: "x", PhoneNumber: "1", Email: "e@example.com"}},
			{"missing phone number", auth.Application{Name: "x", Address: "a", Email: "e@example.com"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				notifier := &recordingNotifier{}
				service := auth.NewService(&fakeAuthenticator{}, memory.NewStore(), notifier, discardLogger())

				if err := service.Apply(context.Background(), tt.application); err == nil {
					t.Fatal("Apply() error = nil, want validation error")
				}
				if len(notifier.applications) != 0 {
					t.Errorf("invalid application was forwarded: %+v", notifier.applications)
				}
			})
		}
	})

	t.Run("notifier failure surfaces", func(t *testing.T) {
		notifier := &recordingNotifier{err: errors.New("relay down")}
		service := auth.NewService(&fakeAuthenticator{}, memory.NewStore(), notifier, discardLogger())

		if err := service.Apply(context.Background(), valid); err == nil {
			t.Fatal("Apply() error = nil, want forwarding error")
		}
	})
}
