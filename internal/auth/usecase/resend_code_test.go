package usecase

import (
	"context"
	"testing"

	"github.com/Mjunajo/mfa-system/internal/pkg/goerror"
	"github.com/Mjunajo/mfa-system/internal/pkg/idempotency"
)

func TestResendCode(t *testing.T) {
	t.Run("UnknownSession", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		err := f.uc.ResendCode(context.Background(), ResendCodeInput{SessionToken: "bogus"})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("AuthenticatorAccountsHaveNoDeliveredCodes", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.register(t, "alice", "s3cret-password", "totp")
		sess := f.login(t, "alice", "s3cret-password")

		// Act
		err := f.uc.ResendCode(context.Background(), ResendCodeInput{SessionToken: sess.SessionToken})

		// Assert
		assertCode(t, err, goerror.CodeConflict)
	})

	t.Run("CooldownThrottlesRepeatSends", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.register(t, "bob", "s3cret-password", "delivered-email")
		sess := f.login(t, "bob", "s3cret-password")

		f.idemp.state = idempotency.StateInProgress

		// Act
		err := f.uc.ResendCode(context.Background(), ResendCodeInput{SessionToken: sess.SessionToken})

		// Assert
		assertCode(t, err, goerror.CodeConflict)
		if f.repo.challengeCount() != 1 {
			t.Fatalf("throttled resend must not create a challenge, got %d", f.repo.challengeCount())
		}
	})
}
