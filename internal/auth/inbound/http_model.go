package inbound

import "time"

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Strategy string `json:"strategy"`
}

type RegisterResponse struct {
	AccountID  int64  `json:"account_id,string"`
	TOTPSecret string `json:"totp_secret,omitempty"`
	TOTPURI    string `json:"totp_uri,omitempty"`
}

func (RegisterResponse) Message() string {
	return "Registration successful."
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	SessionToken  string    `json:"session_token"`
	Strategy      string    `json:"strategy"`
	CodeDelivered bool      `json:"code_delivered"`
	ExpiresAt     time.Time `json:"expires_at"`
}

func (LoginResponse) Message() string {
	return "Password accepted. Provide your second factor to finish signing in."
}

type VerifyFactorRequest struct {
	SessionToken string `json:"session_token"`
	Code         string `json:"code"`
}

type VerifyFactorResponse struct {
	AccountID       int64     `json:"account_id,string"`
	Username        string    `json:"username"`
	Strategy        string    `json:"strategy"`
	AuthenticatedAt time.Time `json:"authenticated_at"`
}

func (VerifyFactorResponse) Message() string {
	return "Authentication successful."
}

type ResendCodeRequest struct {
	SessionToken string `json:"session_token"`
}

type ResendCodeResponse struct{}

func (ResendCodeResponse) Message() string {
	return "A new verification code has been sent."
}

type ProvisionTOTPRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Rotate   bool   `json:"rotate,omitempty"`
}

type ProvisionTOTPResponse struct {
	Secret string `json:"secret"`
	URI    string `json:"uri"`
}

func (ProvisionTOTPResponse) Message() string {
	return "Authenticator provisioned. Scan the URI and keep the secret safe."
}
