package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Mjunajo/mfa-system/internal/auth/entity"
	"github.com/Mjunajo/mfa-system/internal/pkg/goerror"
	"github.com/Mjunajo/mfa-system/internal/pkg/mfa"
)

type RegisterInput struct {
	Username string `validate:"required,min=3,max=64,alphanum"`
	Password string `validate:"required,password"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"omitempty,e164"`
	Strategy string `validate:"required,oneof=delivered-email delivered-sms totp"`
}

type RegisterOutput struct {
	AccountID int64
	// TOTPSecret and TOTPURI are only set for authenticator accounts and are
	// shown exactly once; the stored copy is encrypted.
	TOTPSecret string
	TOTPURI    string
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Username = strings.TrimSpace(strings.ToLower(in.Username))
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	strategy := entity.FactorStrategyFromString(in.Strategy)
	if strategy == entity.FactorStrategyDeliveredSMS && in.Phone == "" {
		return nil, goerror.NewInvalidInput(nil, "phone", "phone is required for the delivered-sms strategy")
	}

	_, err := s.repoDB.GetAccountByUsername(ctx, in.Username)
	if err == nil {
		return nil, goerror.NewBusiness("Username already registered", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by username", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	hashedPassword, err := s.password.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	newID := s.uid.Generate()
	acc := entity.Account{
		ID:             newID,
		Username:       in.Username,
		Email:          in.Email,
		Phone:          in.Phone,
		PasswordHash:   string(hashedPassword),
		FactorStrategy: strategy,
	}

	out := &RegisterOutput{AccountID: newID}
	if strategy == entity.FactorStrategyTOTP {
		secret, uri, err := s.totp.Generate(in.Username)
		if err != nil {
			slog.ErrorContext(ctx, "failed to generate authenticator secret", "error", err)
			return nil, goerror.NewServer(err)
		}

		sealed, err := s.mfaEncryptor.Encrypt([]byte(secret), mfa.Scope{AccountID: newID, Purpose: mfa.PurposeOTPSeed})
		if err != nil {
			slog.ErrorContext(ctx, "failed to encrypt authenticator secret", "error", err)
			return nil, goerror.NewServer(err)
		}

		acc.TOTPSecret = sealed
		acc.TOTPKeyVersion = 1
		out.TOTPSecret = secret
		out.TOTPURI = uri
	}

	if err := s.repoDB.CreateAccount(ctx, acc); err != nil {
		// Either unique column may have collided.
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("Username or email already registered", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create account", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	// The event is informational; registration has already succeeded.
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
			AccountID:      acc.ID,
			Username:       acc.Username,
			Email:          acc.Email,
			FactorStrategy: strategy.String(),
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish user registered", "account_id", acc.ID, "error", err)
		}
		return nil
	})

	return out, nil
}
