package entity

import (
	"testing"
	"time"
)

func TestFactorStrategy(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		for _, name := range []string{"delivered-email", "delivered-sms", "totp"} {
			fs := FactorStrategyFromString(name)
			if fs.IsUnknown() {
				t.Fatalf("%q must parse to a known strategy", name)
			}
			if fs.String() != name {
				t.Fatalf("round trip mismatch: %q became %q", name, fs.String())
			}
		}
	})

	t.Run("UnknownInput", func(t *testing.T) {
		if fs := FactorStrategyFromString("push"); !fs.IsUnknown() {
			t.Fatalf("unrecognized name must map to unknown, got %v", fs)
		}
		if got := FactorStrategyUnknown.String(); got != "unknown" {
			t.Fatalf("unexpected name %q", got)
		}
	})

	t.Run("IsDelivered", func(t *testing.T) {
		if !FactorStrategyDeliveredEmail.IsDelivered() || !FactorStrategyDeliveredSMS.IsDelivered() {
			t.Fatalf("delivered strategies must report IsDelivered")
		}
		if FactorStrategyTOTP.IsDelivered() {
			t.Fatalf("totp must not report IsDelivered")
		}
	})
}

func TestAccountDestination(t *testing.T) {
	acc := Account{Email: "alice@example.com", Phone: "+15551230001"}

	acc.FactorStrategy = FactorStrategyDeliveredEmail
	if got := acc.Destination(); got != "alice@example.com" {
		t.Fatalf("expected email destination, got %q", got)
	}

	acc.FactorStrategy = FactorStrategyDeliveredSMS
	if got := acc.Destination(); got != "+15551230001" {
		t.Fatalf("expected phone destination, got %q", got)
	}

	acc.FactorStrategy = FactorStrategyTOTP
	if got := acc.Destination(); got != "" {
		t.Fatalf("totp accounts have no destination, got %q", got)
	}
}

func TestAuthSessionExpired(t *testing.T) {
	deadline := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	sess := AuthSession{ExpiresAt: deadline}

	if sess.Expired(deadline.Add(-time.Second)) {
		t.Fatalf("session must be live before its deadline")
	}
	if !sess.Expired(deadline) {
		t.Fatalf("session must be expired at its deadline")
	}
	if !sess.Expired(deadline.Add(time.Second)) {
		t.Fatalf("session must be expired past its deadline")
	}
}
