package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Mjunajo/mfa-system/internal/pkg/goerror"
)

func TestLogin(t *testing.T) {
	t.Run("DeliveredCodeSent", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.register(t, "alice", "s3cret-password", "delivered-email")

		// Act
		out, err := f.uc.Login(context.Background(), LoginInput{
			Username: "alice",
			Password: "s3cret-password",
		})

		// Assert
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if out.SessionToken == "" {
			t.Fatalf("expected a session token")
		}
		if !out.CodeDelivered {
			t.Fatalf("expected a code to be delivered")
		}
		if out.Strategy != "delivered-email" {
			t.Fatalf("unexpected strategy %q", out.Strategy)
		}
		if f.dispatcher.lastCode() == "" {
			t.Fatalf("dispatcher received no code")
		}
		if f.repo.challengeCount() != 1 {
			t.Fatalf("expected 1 stored challenge, got %d", f.repo.challengeCount())
		}
		if f.uc.ActiveSessions() != 1 {
			t.Fatalf("expected 1 active session, got %d", f.uc.ActiveSessions())
		}
	})

	t.Run("TOTPNothingDelivered", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.register(t, "bob", "s3cret-password", "totp")

		// Act
		out, err := f.uc.Login(context.Background(), LoginInput{
			Username: "bob",
			Password: "s3cret-password",
		})

		// Assert
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if out.CodeDelivered {
			t.Fatalf("authenticator logins must not deliver codes")
		}
		if f.dispatcher.lastCode() != "" {
			t.Fatalf("dispatcher must not be called for authenticator accounts")
		}
	})

	t.Run("UnknownUsernameIndistinguishable", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.register(t, "carol", "s3cret-password", "delivered-email")

		// Act
		_, errUnknown := f.uc.Login(context.Background(), LoginInput{
			Username: "nobody",
			Password: "s3cret-password",
		})
		_, errWrongPass := f.uc.Login(context.Background(), LoginInput{
			Username: "carol",
			Password: "wrong-password",
		})

		// Assert
		assertCode(t, errUnknown, goerror.CodeUnauthorized)
		assertCode(t, errWrongPass, goerror.CodeUnauthorized)

		var g1, g2 *goerror.Error
		errors.As(errUnknown, &g1)
		errors.As(errWrongPass, &g2)
		if g1.Msg() != g2.Msg() {
			t.Fatalf("unknown-user and wrong-password messages differ: %q vs %q", g1.Msg(), g2.Msg())
		}
	})

	t.Run("DeliveryFailure", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.register(t, "dave", "s3cret-password", "delivered-email")
		f.dispatcher.err = errors.New("gateway down")

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Username: "dave",
			Password: "s3cret-password",
		})

		// Assert
		assertCode(t, err, goerror.CodeDeliveryFailure)
		if f.uc.ActiveSessions() != 0 {
			t.Fatalf("failed delivery must not leave a pending session")
		}
	})
}
