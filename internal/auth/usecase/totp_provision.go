package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Mjunajo/mfa-system/internal/auth/entity"
	"github.com/Mjunajo/mfa-system/internal/pkg/goerror"
	"github.com/Mjunajo/mfa-system/internal/pkg/mfa"
)

type ProvisionTOTPInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
	// Rotate replaces an existing secret. Without it, provisioning over a
	// live secret is refused so a stolen password alone cannot swap the
	// authenticator.
	Rotate bool
}

type ProvisionTOTPOutput struct {
	Secret string
	URI    string
}

// ProvisionTOTP mints a new authenticator secret for an account. Rotation
// resets the replay watermark; codes from the old secret stop working
// immediately.
func (s *Usecase) ProvisionTOTP(ctx context.Context, in ProvisionTOTPInput) (*ProvisionTOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "ProvisionTOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	username := strings.TrimSpace(strings.ToLower(in.Username))
	acc, err := s.repoDB.GetAccountByUsername(ctx, username)
	if err != nil {
		s.password.Verify(s.dummyHash, in.Password)
		slog.WarnContext(ctx, "provision for unknown or unreadable account", "username", username, "error", err)
		return nil, goerror.NewBusiness("invalid username or password", goerror.CodeUnauthorized)
	}

	if !s.password.Verify(acc.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "password does not match", "account_id", acc.ID)
		return nil, goerror.NewBusiness("invalid username or password", goerror.CodeUnauthorized)
	}

	if acc.FactorStrategy != entity.FactorStrategyTOTP {
		return nil, goerror.NewBusiness("Account does not use an authenticator factor", goerror.CodeConflict)
	}

	if len(acc.TOTPSecret) > 0 && !in.Rotate {
		return nil, goerror.NewBusiness("Authenticator already provisioned", goerror.CodeConflict)
	}

	secret, uri, err := s.totp.Generate(acc.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate authenticator secret", "account_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	sealed, err := s.mfaEncryptor.Encrypt([]byte(secret), mfa.Scope{AccountID: acc.ID, Purpose: mfa.PurposeOTPSeed})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encrypt authenticator secret", "account_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.SetTOTPSecret(ctx, acc.ID, sealed, acc.TOTPKeyVersion+1); err != nil {
		slog.ErrorContext(ctx, "failed to repo set authenticator secret", "account_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProvisionTOTPOutput{Secret: secret, URI: uri}, nil
}
