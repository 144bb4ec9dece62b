package smtp

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/feastly/opsboard/internal/auth"
)

func TestSendApplication(t *testing.T) {
	cfg := Config{
		Host:     "mail.example.com",
		Port:     587,
		Username: "intake",
		Password: "secret",
		From:     "noreply@example.com",
		To:       "intake@example.com",
	}
	application := auth.Application{
		Name:        "The Culinary Spot",
		Address:     "123 Foodie Lane",
		PhoneNumber: "1234567890",
		Email:       "owner@example.com",
	}

	t.Run("builds the intake email", func(t *testing.T) {
		var (
			gotAddr string
			gotFrom string
			gotTo   []string
			gotMsg  string
		)
		notifier := NewNotifier(cfg)
		notifier.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, string(msg)
			return nil
		}

		if err := notifier.SendApplication(context.Background(), application); err != nil {
			t.Fatalf("SendApplication() error = %v", err)
		}

		if gotAddr != "mail.example.com:587" {
			t.Errorf("addr = %s, want mail.example.com:587", gotAddr)
		}
		if gotFrom != cfg.From {
			t.Errorf("from = %s, want %s", gotFrom, cfg.From)
		}
		if len(gotTo) != 1 || gotTo[0] != cfg.To {
			t.Errorf("to = %v, want [%s]", gotTo, cfg.To)
		}
		if !strings.Contains(gotMsg, "Subject: The Culinary Spot has applied for our service!") {
			t.Errorf("subject missing from message:\n%s", gotMsg)
		}
		for _, want := range []string{
			"Restaurant's address:  123 Foodie Lane",
			"Restaurant's name:  The Culinary Spot",
			"Owner's email:  owner@example.com",
			"Restaurant's phone number:  1234567890",
		} {
			if !strings.Contains(gotMsg, want) {
				t.Errorf("message missing %q:\n%s", want, gotMsg)
			}
		}
	})

	t.Run("relay failure surfaces", func(t *testing.T) {
		notifier := NewNotifier(cfg)
		notifier.send = func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("connection refused")
		}

		if err := notifier.SendApplication(context.Background(), application); err == nil {
			t.Fatal("SendApplication() error = nil, want relay error")
		}
	})
}
