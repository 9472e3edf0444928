package entity

import "time"

// AuthStep tracks where a login attempt is in the two-step flow.
type AuthStep int16

const (
	AuthStepUnknown AuthStep = 0

	// AuthStepPasswordVerified means the password check passed and the
	// second factor is still outstanding.
	AuthStepPasswordVerified AuthStep = 1

	// AuthStepAuthenticated means both factors passed. Sessions in this
	// state are terminal and removed from the registry.
	AuthStepAuthenticated AuthStep = 2
)

func (as AuthStep) String() string {
	switch as {
	case AuthStepPasswordVerified:
		return "password-verified"
	case AuthStepAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// AuthSession is a pending login held in memory between the password step
// and the factor step. It is never persisted; a process restart simply
// forces the user to log in again.
type AuthSession struct {
	Token     string
	AccountID int64
	Username  string
	Strategy  FactorStrategy
	Step      AuthStep
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its deadline at the given time.
func (s *AuthSession) Expired(at time.Time) bool {
	return !at.Before(s.ExpiresAt)
}
