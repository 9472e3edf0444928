package entity

type FactorStrategy int16

const (
	FactorStrategyUnknown FactorStrategy = 0

	// FactorStrategyDeliveredEmail sends a short-lived numeric code by email.
	FactorStrategyDeliveredEmail FactorStrategy = 1

	// FactorStrategyDeliveredSMS sends a short-lived numeric code by text.
	FactorStrategyDeliveredSMS FactorStrategy = 2

	// FactorStrategyTOTP verifies codes from an authenticator app; nothing
	// is delivered at login time.
	FactorStrategyTOTP FactorStrategy = 3
)

func FactorStrategyFromString(str string) FactorStrategy {
	switch str {
	case "delivered-email":
		return FactorStrategyDeliveredEmail
	case "delivered-sms":
		return FactorStrategyDeliveredSMS
	case "totp":
		return FactorStrategyTOTP
	default:
		return FactorStrategyUnknown
	}
}

func (fs FactorStrategy) String() string {
	switch fs {
	case FactorStrategyDeliveredEmail:
		return "delivered-email"
	case FactorStrategyDeliveredSMS:
		return "delivered-sms"
	case FactorStrategyTOTP:
		return "totp"
	default:
		return "unknown"
	}
}

// IsDelivered reports whether the strategy requires out-of-band delivery.
func (fs FactorStrategy) IsDelivered() bool {
	return fs == FactorStrategyDeliveredEmail || fs == FactorStrategyDeliveredSMS
}

func (fs FactorStrategy) IsUnknown() bool {
	switch fs {
	case FactorStrategyDeliveredEmail, FactorStrategyDeliveredSMS, FactorStrategyTOTP:
		return false
	default:
		return true
	}
}
