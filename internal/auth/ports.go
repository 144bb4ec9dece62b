package auth

import (
	"context"
	"errors"
	"strings"
)

// Profile is the restaurant owner identity returned by the backend on a
// successful login.
type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Rating   string `json:"rating"`
}

// Authenticator verifies credentials against the remote backend.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (Profile, error)
}

// Application is a restaurant's sign-up request. Accounts are provisioned
// manually by the platform team, so an application is forwarded to them
// rather than creating anything locally.
type Application struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

// Validate checks the fields the intake process requires.
func (a Application) Validate() error {
	if strings.TrimSpace(a.Email) == "" {
		return errors.New("email is required")
	}
	if strings.TrimSpace(a.Address) == "" {
		return errors.New("address is required")
	}
	if strings.TrimSpace(a.PhoneNumber) == "" {
		return errors.New("phone_number is required")
	}
	return nil
}

// Notifier forwards sign-up applications to the platform team.
type Notifier interface {
	SendApplication(ctx context.Context, application Application) error
}

var (
	// ErrInvalidCredentials is returned when the backend rejects a login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
