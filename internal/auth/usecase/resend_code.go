package usecase

import (
	"context"
	"log/slog"

	"github.com/Mjunajo/mfa-system/internal/auth/entity"
	"github.com/Mjunajo/mfa-system/internal/pkg/goerror"
	"github.com/Mjunajo/mfa-system/internal/pkg/idempotency"
)

type ResendCodeInput struct {
	SessionToken string `validate:"required"`
}

// ResendCode issues a fresh verification code for a pending login. The
// previous code stays valid until it expires or is consumed.
func (s *Usecase) ResendCode(ctx context.Context, in ResendCodeInput) error {
	ctx, span := s.startSpan(ctx, "ResendCode")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	sess, ok := s.sessions.Get(in.SessionToken, s.clock.Now())
	if !ok {
		return goerror.NewBusiness("invalid or expired login session", goerror.CodeUnauthorized)
	}

	if !sess.Strategy.IsDelivered() {
		return goerror.NewBusiness("this account does not receive delivered codes", goerror.CodeConflict)
	}

	acc, err := s.repoDB.GetAccountByUsername(ctx, sess.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by username", "username", sess.Username, "error", err)
		return goerror.NewServer(err)
	}

	return s.issueDeliveredCode(ctx, acc, sess.Token)
}

// issueDeliveredCode mints a numeric code, stores its digest as a challenge,
// and sends the plain code to the account's channel. The per-session cooldown
// throttles rapid repeat sends.
func (s *Usecase) issueDeliveredCode(ctx context.Context, acc *entity.Account, sessionToken string) error {
	cooldown := s.cfg.GetSecond("modules.auth.resend_cooldown_seconds")
	if cooldown > 0 {
		state, err := s.idemp.Acquire(ctx, "auth:code-send:"+sessionToken, cooldown)
		if err != nil {
			// Throttling is best effort; a broken tracker must not block logins.
			slog.WarnContext(ctx, "failed to check code send cooldown", "error", err)
		} else if state != idempotency.StateNone {
			return goerror.NewBusiness("A code was sent recently, wait before requesting another", goerror.CodeConflict)
		}
	}

	code, err := s.code.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate verification code", "error", err)
		return goerror.NewServer(err)
	}

	codeHash, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash verification code", "error", err)
		return goerror.NewServer(err)
	}

	ttl := s.cfg.GetMinute("modules.auth.code_ttl_minutes")
	now := s.clock.Now()

	if err := s.repoDB.CreateChallenge(ctx, entity.OneTimeChallenge{
		ID:        s.uid.Generate(),
		Username:  acc.Username,
		CodeHash:  string(codeHash),
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create challenge", "account_id", acc.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.dispatcher.Deliver(ctx, acc, code, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to deliver verification code",
			"account_id", acc.ID, "strategy", acc.FactorStrategy.String(), "error", err)
		return goerror.NewBusiness("Could not deliver the verification code", goerror.CodeDeliveryFailure)
	}

	return nil
}
