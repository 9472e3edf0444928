package otp

import (
	"strings"
	"testing"
	"time"

	libOTP "github.com/pquerna/otp"
)

func TestTOTP(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	t.Run("GenerateAndValidate", func(t *testing.T) {
		// Arrange
		o := NewTOTP("Test Issuer", 30, 1, libOTP.DigitsSix)

		secret, uri, err := o.Generate("alice")
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if secret == "" {
			t.Fatalf("expected a secret")
		}
		if !strings.HasPrefix(uri, "otpauth://totp/") {
			t.Fatalf("unexpected provisioning URI %q", uri)
		}

		code, err := o.GenerateCode(secret, at)
		if err != nil {
			t.Fatalf("generate code failed: %v", err)
		}

		// Act & Assert
		if !o.Validate(code, secret, at) {
			t.Fatalf("code must validate at its own time")
		}
		if o.Validate("000000", secret, at) && code != "000000" {
			t.Fatalf("arbitrary code must not validate")
		}
	})

	t.Run("SkewWindow", func(t *testing.T) {
		// Arrange
		o := NewTOTP("Test Issuer", 30, 1, libOTP.DigitsSix)
		secret, _, err := o.Generate("bob")
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}

		code, err := o.GenerateCode(secret, at)
		if err != nil {
			t.Fatalf("generate code failed: %v", err)
		}

		// Act & Assert
		if !o.Validate(code, secret, at.Add(30*time.Second)) {
			t.Fatalf("code from the previous step must validate with skew 1")
		}
		if o.Validate(code, secret, at.Add(90*time.Second)) {
			t.Fatalf("code two steps away must not validate with skew 1")
		}
	})

	t.Run("StepIndex", func(t *testing.T) {
		o := NewTOTP("Test Issuer", 30, 1, libOTP.DigitsSix)

		step := o.StepIndex(at)
		if o.StepIndex(at.Add(29*time.Second)) != step {
			t.Fatalf("same window must map to the same step")
		}
		if o.StepIndex(at.Add(30*time.Second)) != step+1 {
			t.Fatalf("next window must map to the next step")
		}
	})

	t.Run("MatchStepFindsProducingWindow", func(t *testing.T) {
		// Arrange
		o := NewTOTP("Test Issuer", 30, 1, libOTP.DigitsSix)
		secret, _, err := o.Generate("carol")
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}

		prev := at.Add(-30 * time.Second)
		code, err := o.GenerateCode(secret, prev)
		if err != nil {
			t.Fatalf("generate code failed: %v", err)
		}

		// Act
		step, ok := o.MatchStep(code, secret, at)

		// Assert
		if !ok {
			t.Fatalf("code from the previous window must match within skew")
		}
		if step != o.StepIndex(prev) {
			t.Fatalf("expected step %d, got %d", o.StepIndex(prev), step)
		}

		if _, ok := o.MatchStep("000000", secret, at); ok {
			if c, _ := o.GenerateCode(secret, at); c != "000000" {
				t.Fatalf("arbitrary code must not match")
			}
		}
	})

	t.Run("DefaultsApplied", func(t *testing.T) {
		o := NewTOTP("Test Issuer", 0, 0, libOTP.Digits(12))

		if o.period != 30 || o.skew != 1 || o.digits != libOTP.DigitsSix {
			t.Fatalf("unexpected defaults: period=%d skew=%d digits=%v", o.period, o.skew, o.digits)
		}
	})
}

func TestNumericCode(t *testing.T) {
	t.Run("GenerateFixedWidth", func(t *testing.T) {
		// Arrange
		gen := NewNumericCode(6)

		// Act & Assert
		for i := 0; i < 50; i++ {
			code, err := gen.Generate()
			if err != nil {
				t.Fatalf("generate failed: %v", err)
			}
			if len(code) != 6 {
				t.Fatalf("expected width 6, got %q", code)
			}
			if !gen.IsWellFormed(code) {
				t.Fatalf("generated code %q must be well formed", code)
			}
		}
	})

	t.Run("IsWellFormed", func(t *testing.T) {
		gen := NewNumericCode(6)

		cases := map[string]bool{
			"123456":  true,
			"000000":  true,
			"12345":   false,
			"1234567": false,
			"12345a":  false,
			"":        false,
		}
		for code, want := range cases {
			if got := gen.IsWellFormed(code); got != want {
				t.Fatalf("IsWellFormed(%q) = %v, want %v", code, got, want)
			}
		}
	})

	t.Run("LengthOutOfRangeFallsBack", func(t *testing.T) {
		if got := NewNumericCode(3).Length(); got != 6 {
			t.Fatalf("expected fallback length 6, got %d", got)
		}
		if got := NewNumericCode(11).Length(); got != 6 {
			t.Fatalf("expected fallback length 6, got %d", got)
		}
		if got := NewNumericCode(8).Length(); got != 8 {
			t.Fatalf("expected length 8, got %d", got)
		}
	})
}
