package mfa

// Purpose identifies what kind of secret a ciphertext protects.
type Purpose string

// PurposeOTPSeed scopes encryption to TOTP shared secrets.
const PurposeOTPSeed Purpose = "otp_seed"

// Scope binds a ciphertext to the account it belongs to.
// It is fed into AES-GCM as AAD, so a ciphertext copied onto another
// account's row fails to decrypt.
type Scope struct {
	// AccountID is the owning account identifier.
	AccountID int64
	// Purpose is the encryption purpose.
	Purpose Purpose
}
