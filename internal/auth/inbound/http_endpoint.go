package inbound

import (
	"github.com/Mjunajo/mfa-system/internal/auth/usecase"
	"github.com/Mjunajo/mfa-system/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the authentication workflows.
type HTTPEndpoint struct {
	uc uc
}

// Register creates an account with a username, password, and factor strategy.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Phone:    req.Phone,
		Strategy: req.Strategy,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{
		AccountID:  resp.AccountID,
		TOTPSecret: resp.TOTPSecret,
		TOTPURI:    resp.TOTPURI,
	}, nil
}

// Login checks the password and opens a pending session awaiting the
// second factor.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		SessionToken:  resp.SessionToken,
		Strategy:      resp.Strategy,
		CodeDelivered: resp.CodeDelivered,
		ExpiresAt:     resp.ExpiresAt,
	}, nil
}

// VerifyFactor completes a pending login with a verification code.
func (h *HTTPEndpoint) VerifyFactor(r *router.Request) (any, error) {
	var req VerifyFactorRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyFactor(r.Context(), usecase.VerifyFactorInput{
		SessionToken: req.SessionToken,
		Code:         req.Code,
	})
	if err != nil {
		return nil, err
	}

	return VerifyFactorResponse{
		AccountID:       resp.AccountID,
		Username:        resp.Username,
		Strategy:        resp.Strategy,
		AuthenticatedAt: resp.AuthenticatedAt,
	}, nil
}

// ResendCode sends a fresh verification code for a pending login.
func (h *HTTPEndpoint) ResendCode(r *router.Request) (any, error) {
	var req ResendCodeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ResendCode(r.Context(), usecase.ResendCodeInput{
		SessionToken: req.SessionToken,
	}); err != nil {
		return nil, err
	}

	return ResendCodeResponse{}, nil
}

// ProvisionTOTP mints or rotates an authenticator secret.
func (h *HTTPEndpoint) ProvisionTOTP(r *router.Request) (any, error) {
	var req ProvisionTOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ProvisionTOTP(r.Context(), usecase.ProvisionTOTPInput{
		Username: req.Username,
		Password: req.Password,
		Rotate:   req.Rotate,
	})
	if err != nil {
		return nil, err
	}

	return ProvisionTOTPResponse{
		Secret: resp.Secret,
		URI:    resp.URI,
	}, nil
}
