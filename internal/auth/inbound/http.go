package inbound

import (
	"context"

	"github.com/Mjunajo/mfa-system/internal/auth/usecase"
	"github.com/Mjunajo/mfa-system/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)

	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	VerifyFactor(ctx context.Context, in usecase.VerifyFactorInput) (*usecase.VerifyFactorOutput, error)
	ResendCode(ctx context.Context, in usecase.ResendCodeInput) error

	ProvisionTOTP(ctx context.Context, in usecase.ProvisionTOTPInput) (*usecase.ProvisionTOTPOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Registration
	r.POST("/api/v1/auth/register", end.Register)

	// Two-step login
	r.POST("/api/v1/auth/login", end.Login)
	r.POST("/api/v1/auth/login/verify", end.VerifyFactor)
	r.POST("/api/v1/auth/login/resend", end.ResendCode)

	// Authenticator management
	r.POST("/api/v1/auth/totp/provision", end.ProvisionTOTP)
}
