package entity

import "time"

type Account struct {
	ID             int64
	Username       string
	Email          string
	Phone          string
	PasswordHash   string
	FactorStrategy FactorStrategy
	// TOTPSecret is the AES-GCM encrypted shared secret; nil when the
	// account does not use the totp strategy.
	TOTPSecret     []byte
	TOTPKeyVersion int16
	// LastTOTPStep is the highest time-step counter ever accepted for this
	// account. Codes at or below this watermark are replays.
	LastTOTPStep int64
	// IsVerified flips to true on the first successful second-factor check.
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OneTimeChallenge is a delivered code pending verification. Only the keyed
// digest of the code is stored; several challenges may be outstanding for
// the same username at once.
type OneTimeChallenge struct {
	ID        int64
	Username  string
	CodeHash  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Destination returns where a delivered code should be sent for this
// account, or "" for strategies with no delivery step.
func (a *Account) Destination() string {
	switch a.FactorStrategy {
	case FactorStrategyDeliveredEmail:
		return a.Email
	case FactorStrategyDeliveredSMS:
		return a.Phone
	default:
		return ""
	}
}
