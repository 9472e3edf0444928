package otp

import (
	"crypto/subtle"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// OTP defines the contract for TOTP operations.
type OTP interface {
	// Generate creates a secret and provisioning URI for an account name.
	// The URI follows the otpauth://totp/... shape understood by standard
	// authenticator apps.
	Generate(accountName string) (secret string, uri string, err error)
	// Validate checks whether a code is valid at the given time, tolerating
	// the configured clock-skew window.
	Validate(code, secret string, at time.Time) bool
	// GenerateCode creates a TOTP code for the given secret and time.
	GenerateCode(secret string, at time.Time) (string, error)
	// StepIndex returns the time-step counter for the given time. Callers
	// that track the last accepted step for replay protection use this as
	// the watermark value.
	StepIndex(at time.Time) int64
	// MatchStep reports which time step within the skew window produced the
	// code, so callers can advance a replay watermark to the exact step that
	// was consumed.
	MatchStep(code, secret string, at time.Time) (step int64, ok bool)
}

// TOTP implements OTP using the Time-based One-Time Password algorithm.
type TOTP struct {
	issuer string
	period uint
	skew   uint
	digits otp.Digits
}

// NewTOTP constructs a TOTP instance with sensible defaults.
//
// If digits is not 6 or 8, it falls back to 6. If period is 0, it uses the
// common 30-second step. skew 0 becomes 1, meaning codes from the adjacent
// step on either side are also accepted.
func NewTOTP(issuer string, period, skew uint, digits otp.Digits) *TOTP {
	if digits != otp.DigitsSix && digits != otp.DigitsEight {
		digits = otp.DigitsSix
	}

	if period == 0 {
		period = 30
	}

	if skew == 0 {
		skew = 1
	}

	return &TOTP{
		issuer: issuer,
		period: period,
		skew:   skew,
		digits: digits,
	}
}

// Generate creates a secret and provisioning URI for an account name.
func (o *TOTP) Generate(accountName string) (secret string, uri string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      o.issuer,
		AccountName: accountName,
		Period:      o.period,
		SecretSize:  20, // RFC 4226/6238 recommendation
		Digits:      o.digits,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", err
	}

	return key.Secret(), key.URL(), nil
}

// Validate checks whether a code is valid at the given time.
func (o *TOTP) Validate(code, secret string, at time.Time) bool {
	rv, err := totp.ValidateCustom(code, secret, at, totp.ValidateOpts{
		Period:    o.period,
		Skew:      o.skew,
		Digits:    o.digits,
		Algorithm: otp.AlgorithmSHA1,
	})

	return rv && err == nil
}

// GenerateCode creates a TOTP code for the given secret and time.
func (o *TOTP) GenerateCode(secret string, at time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, at, totp.ValidateOpts{
		Period:    o.period,
		Skew:      o.skew,
		Digits:    o.digits,
		Algorithm: otp.AlgorithmSHA1,
	})
}

// StepIndex returns floor(unix(at) / period).
func (o *TOTP) StepIndex(at time.Time) int64 {
	return at.Unix() / int64(o.period)
}

// MatchStep checks the code against every step in the skew window around at
// and returns the step that produced it. The current step is checked first,
// then earlier and later neighbors in increasing distance.
func (o *TOTP) MatchStep(code, secret string, at time.Time) (int64, bool) {
	period := time.Duration(o.period) * time.Second

	for offset := 0; offset <= int(o.skew); offset++ {
		deltas := []int{offset}
		if offset > 0 {
			deltas = []int{-offset, offset}
		}

		for _, delta := range deltas {
			candidate := at.Add(time.Duration(delta) * period)
			expected, err := totp.GenerateCodeCustom(secret, candidate, totp.ValidateOpts{
				Period:    o.period,
				Digits:    o.digits,
				Algorithm: otp.AlgorithmSHA1,
			})
			if err != nil {
				continue
			}
			if subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1 {
				return o.StepIndex(candidate), true
			}
		}
	}

	return 0, false
}
