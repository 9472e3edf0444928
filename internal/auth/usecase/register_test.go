package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Mjunajo/mfa-system/internal/pkg/goerror"
)

func TestRegister(t *testing.T) {
	t.Run("DeliveredEmail", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		out := f.register(t, "alice", "s3cret-password", "delivered-email")

		// Assert
		if out.AccountID == 0 {
			t.Fatalf("expected an account id")
		}
		if out.TOTPSecret != "" || out.TOTPURI != "" {
			t.Fatalf("delivered accounts must not receive an authenticator secret")
		}

		acc, err := f.repo.GetAccountByUsername(context.Background(), "alice")
		if err != nil {
			t.Fatalf("account not stored: %v", err)
		}
		if acc.PasswordHash == "s3cret-password" {
			t.Fatalf("password must not be stored in plaintext")
		}
		if acc.IsVerified {
			t.Fatalf("new accounts start unverified")
		}
	})

	t.Run("TOTPReturnsSecretOnce", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		out := f.register(t, "bob", "s3cret-password", "totp")

		// Assert
		if out.TOTPSecret == "" || out.TOTPURI == "" {
			t.Fatalf("authenticator accounts must receive secret and URI")
		}

		acc, err := f.repo.GetAccountByUsername(context.Background(), "bob")
		if err != nil {
			t.Fatalf("account not stored: %v", err)
		}
		if string(acc.TOTPSecret) == out.TOTPSecret {
			t.Fatalf("stored secret must be encrypted, not plaintext")
		}
		if acc.TOTPKeyVersion != 1 {
			t.Fatalf("expected key version 1, got %d", acc.TOTPKeyVersion)
		}
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.register(t, "carol", "s3cret-password", "delivered-email")

		// Act
		_, err := f.uc.Register(context.Background(), RegisterInput{
			Username: "carol",
			Password: "another-password",
			Email:    "carol2@example.com",
			Strategy: "delivered-email",
		})

		// Assert
		assertCode(t, err, goerror.CodeConflict)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.register(t, "heidi", "s3cret-password", "delivered-email")

		// Act
		_, err := f.uc.Register(context.Background(), RegisterInput{
			Username: "heidi2",
			Password: "another-password",
			Email:    "heidi@example.com",
			Strategy: "delivered-email",
		})

		// Assert
		assertCode(t, err, goerror.CodeConflict)

		var gerr *goerror.Error
		if errors.As(err, &gerr) && gerr.Msg() == "Username already registered" {
			t.Fatalf("conflict message must not blame the username for an email collision")
		}
	})

	t.Run("SMSRequiresPhone", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.Register(context.Background(), RegisterInput{
			Username: "dave",
			Password: "s3cret-password",
			Email:    "dave@example.com",
			Strategy: "delivered-sms",
		})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("RejectsShortPassword", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.Register(context.Background(), RegisterInput{
			Username: "erin",
			Password: "short",
			Email:    "erin@example.com",
			Strategy: "delivered-email",
		})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("RejectsUnknownStrategy", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.Register(context.Background(), RegisterInput{
			Username: "frank",
			Password: "s3cret-password",
			Email:    "frank@example.com",
			Strategy: "carrier-pigeon",
		})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("PublishesRegisteredEvent", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		out := f.register(t, "grace", "s3cret-password", "delivered-email")

		// Assert
		if err := f.goroutine.Wait(); err != nil {
			t.Fatalf("background publish failed: %v", err)
		}

		f.msg.mu.Lock()
		defer f.msg.mu.Unlock()
		if len(f.msg.events) != 1 {
			t.Fatalf("expected 1 published event, got %d", len(f.msg.events))
		}
		if f.msg.events[0].AccountID != out.AccountID || f.msg.events[0].Username != "grace" {
			t.Fatalf("unexpected event payload: %+v", f.msg.events[0])
		}
	})
}
