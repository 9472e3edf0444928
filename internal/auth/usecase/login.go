package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Mjunajo/mfa-system/internal/auth/entity"
	"github.com/Mjunajo/mfa-system/internal/pkg/goerror"
)

type LoginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	SessionToken string
	Strategy     string
	// CodeDelivered is true when a verification code was sent out of band.
	// Authenticator accounts read the code from their app instead.
	CodeDelivered bool
	ExpiresAt     time.Time
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	username := strings.TrimSpace(strings.ToLower(in.Username))
	acc, err := s.repoDB.GetAccountByUsername(ctx, username)
	if err != nil {
		// Burn a verify on a throwaway hash so a missing account costs the
		// same as a wrong password.
		s.password.Verify(s.dummyHash, in.Password)
		slog.WarnContext(ctx, "login for unknown or unreadable account", "username", username, "error", err)
		return nil, goerror.NewBusiness("invalid username or password", goerror.CodeUnauthorized)
	}

	if !s.password.Verify(acc.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "password does not match", "account_id", acc.ID)
		return nil, goerror.NewBusiness("invalid username or password", goerror.CodeUnauthorized)
	}

	now := s.clock.Now()
	sess := &entity.AuthSession{
		Token:     s.oid.Generate(),
		AccountID: acc.ID,
		Username:  acc.Username,
		Strategy:  acc.FactorStrategy,
		Step:      entity.AuthStepPasswordVerified,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.GetMinute("modules.auth.session_ttl_minutes")),
	}
	s.sessions.Put(sess)

	out := &LoginOutput{
		SessionToken: sess.Token,
		Strategy:     acc.FactorStrategy.String(),
		ExpiresAt:    sess.ExpiresAt,
	}

	if acc.FactorStrategy.IsDelivered() {
		if err := s.issueDeliveredCode(ctx, acc, sess.Token); err != nil {
			s.sessions.Discard(sess.Token)
			return nil, err
		}
		out.CodeDelivered = true
	}

	return out, nil
}
