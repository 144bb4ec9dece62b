// Package smtp forwards restaurant sign-up applications to the platform team
// by email, mirroring the manual account-provisioning intake process.
package smtp

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/feastly/opsboard/internal/auth"
)

// Config holds the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Notifier sends one email per application.
type Notifier struct {
	cfg  Config
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewNotifier constructs a Notifier using net/smtp with PLAIN auth.
func NewNotifier(cfg Config) *Notifier {
	return &Notifier{cfg: cfg, send: smtp.SendMail}
}

// SendApplication emails the application details to the intake address.
func (n *Notifier) SendApplication(_ context.Context, application auth.Application) error {
	subject := fmt.Sprintf("%s has applied for our service!", application.Name)
	body := strings.Join([]string{
		"Restaurant's address:  " + application.Address,
		"Restaurant's name:  " + application.Name,
		"Owner's email:  " + application.Email,
		"Restaurant's phone number:  " + application.PhoneNumber,
	}, "\n")

	msg := strings.Join([]string{
		"From: " + n.cfg.From,
		"To: " + n.cfg.To,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	authn := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)

	if err := n.send(addr, authn, n.cfg.From, []string{n.cfg.To}, []byte(msg)); err != nil {
		return fmt.Errorf("send application email: %w", err)
	}
	return nil
}
