package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/Mjunajo/mfa-system/internal/auth/entity"
	"github.com/Mjunajo/mfa-system/internal/pkg/goerror"
	"github.com/Mjunajo/mfa-system/internal/pkg/mfa"
)

type VerifyFactorInput struct {
	SessionToken string `validate:"required"`
	Code         string `validate:"required,min=4,max=10,numeric"`
}

type VerifyFactorOutput struct {
	AccountID       int64
	Username        string
	Strategy        string
	AuthenticatedAt time.Time
}

// VerifyFactor completes a pending login by checking the second factor.
// Every failure returns the same message regardless of cause so a caller
// cannot probe which part of the check rejected the code.
func (s *Usecase) VerifyFactor(ctx context.Context, in VerifyFactorInput) (*VerifyFactorOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyFactor")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	sess, ok := s.sessions.Get(in.SessionToken, now)
	if !ok {
		return nil, goerror.NewBusiness("invalid or expired login session", goerror.CodeUnauthorized)
	}

	acc, err := s.repoDB.GetAccountByUsername(ctx, sess.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by username", "username", sess.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	var passed bool
	switch {
	case sess.Strategy.IsDelivered():
		passed, err = s.checkDeliveredCode(ctx, acc, in.Code, now)
	case sess.Strategy == entity.FactorStrategyTOTP:
		passed, err = s.checkTOTPCode(ctx, acc, in.Code, now)
	default:
		slog.ErrorContext(ctx, "session carries unusable factor strategy",
			"account_id", acc.ID, "strategy", sess.Strategy.String())
		passed = false
	}
	if err != nil {
		return nil, err
	}

	if !passed {
		// A failed factor check ends the attempt. The caller starts over
		// from the password step; the token never resolves again.
		s.sessions.Discard(in.SessionToken)
		slog.WarnContext(ctx, "second factor check failed",
			"account_id", acc.ID, "strategy", sess.Strategy.String())
		return nil, goerror.NewBusiness("invalid verification code", goerror.CodeUnauthorized)
	}

	if !acc.IsVerified {
		if err := s.repoDB.MarkAccountVerified(ctx, acc.ID); err != nil {
			slog.ErrorContext(ctx, "failed to repo mark account verified", "account_id", acc.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	s.sessions.Discard(in.SessionToken)

	return &VerifyFactorOutput{
		AccountID:       acc.ID,
		Username:        acc.Username,
		Strategy:        sess.Strategy.String(),
		AuthenticatedAt: now,
	}, nil
}

func (s *Usecase) checkDeliveredCode(ctx context.Context, acc *entity.Account, code string, now time.Time) (bool, error) {
	// Every code takes the same digest-and-lookup path. A malformed code
	// can never match a stored digest, and skipping the round trip would
	// make the miss observable through timing.
	codeHash, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash verification code", "error", err)
		return false, goerror.NewServer(err)
	}

	consumed, err := s.repoDB.ConsumeChallenge(ctx, acc.Username, string(codeHash), now)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo consume challenge", "account_id", acc.ID, "error", err)
		return false, goerror.NewServer(err)
	}

	return consumed, nil
}

func (s *Usecase) checkTOTPCode(ctx context.Context, acc *entity.Account, code string, now time.Time) (bool, error) {
	if len(acc.TOTPSecret) == 0 {
		slog.ErrorContext(ctx, "account has no authenticator secret", "account_id", acc.ID)
		return false, nil
	}

	secret, err := s.mfaEncryptor.Decrypt(acc.TOTPSecret, mfa.Scope{AccountID: acc.ID, Purpose: mfa.PurposeOTPSeed})
	if err != nil {
		slog.ErrorContext(ctx, "failed to decrypt authenticator secret", "account_id", acc.ID, "error", err)
		return false, goerror.NewServer(err)
	}

	step, ok := s.totp.MatchStep(code, string(secret), now)
	if !ok {
		return false, nil
	}

	// Advance the watermark to the matched step. Losing the race, or a step
	// at or below the watermark, means the window was already spent.
	committed, err := s.repoDB.CommitTOTPStep(ctx, acc.ID, step)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo commit authenticator step", "account_id", acc.ID, "error", err)
		return false, goerror.NewServer(err)
	}
	if !committed {
		slog.WarnContext(ctx, "authenticator code replay rejected", "account_id", acc.ID, "step", step)
	}

	return committed, nil
}
