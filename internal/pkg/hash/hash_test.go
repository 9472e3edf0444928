package hash

import (
	"errors"
	"strings"
	"testing"
)

func TestBcrypt(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		// Arrange
		h := NewBcrypt(4, "")

		// Act
		hashed, err := h.Hash("correct horse battery staple")

		// Assert
		if err != nil {
			t.Fatalf("hash failed: %v", err)
		}
		if !h.Verify(string(hashed), "correct horse battery staple") {
			t.Fatalf("verify must accept the original plaintext")
		}
		if h.Verify(string(hashed), "wrong password") {
			t.Fatalf("verify must reject a different plaintext")
		}
	})

	t.Run("PepperChangesOutcome", func(t *testing.T) {
		// Arrange
		peppered := NewBcrypt(4, "pepper")
		plain := NewBcrypt(4, "")

		// Act
		hashed, err := peppered.Hash("some-password")
		if err != nil {
			t.Fatalf("hash failed: %v", err)
		}

		// Assert
		if plain.Verify(string(hashed), "some-password") {
			t.Fatalf("hash made with a pepper must not verify without it")
		}
	})

	t.Run("EmptyPlaintext", func(t *testing.T) {
		h := NewBcrypt(4, "")

		if _, err := h.Hash(""); !errors.Is(err, ErrEmptyPlaintext) {
			t.Fatalf("expected ErrEmptyPlaintext, got %v", err)
		}
	})

	t.Run("MalformedHash", func(t *testing.T) {
		h := NewBcrypt(4, "")

		if h.Verify("not-a-bcrypt-hash", "anything") {
			t.Fatalf("malformed hash must not verify")
		}
	})
}

func TestArgon2id(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		// Arrange
		h := NewArgon2id("")

		// Act
		hashed, err := h.Hash("correct horse battery staple")

		// Assert
		if err != nil {
			t.Fatalf("hash failed: %v", err)
		}
		if !strings.HasPrefix(string(hashed), "$argon2id$") {
			t.Fatalf("expected encoded argon2id format, got %q", hashed)
		}
		if !h.Verify(string(hashed), "correct horse battery staple") {
			t.Fatalf("verify must accept the original plaintext")
		}
		if h.Verify(string(hashed), "wrong password") {
			t.Fatalf("verify must reject a different plaintext")
		}
	})

	t.Run("SaltMakesHashesUnique", func(t *testing.T) {
		h := NewArgon2id("")

		a, err := h.Hash("same-password")
		if err != nil {
			t.Fatalf("hash failed: %v", err)
		}
		b, err := h.Hash("same-password")
		if err != nil {
			t.Fatalf("hash failed: %v", err)
		}

		if string(a) == string(b) {
			t.Fatalf("two hashes of the same input must differ")
		}
	})

	t.Run("MalformedHash", func(t *testing.T) {
		h := NewArgon2id("")

		if h.Verify("$argon2id$garbage", "anything") {
			t.Fatalf("malformed hash must not verify")
		}
	})
}

func TestHMACSHA256(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		// Arrange
		h := NewHMACSHA256("secret-key")

		// Act
		a, err := h.Hash("123456")
		if err != nil {
			t.Fatalf("hash failed: %v", err)
		}
		b, err := h.Hash("123456")
		if err != nil {
			t.Fatalf("hash failed: %v", err)
		}

		// Assert
		if string(a) != string(b) {
			t.Fatalf("same input must produce the same digest")
		}
		if !h.Verify(string(a), "123456") {
			t.Fatalf("verify must accept the original input")
		}
		if h.Verify(string(a), "654321") {
			t.Fatalf("verify must reject a different input")
		}
	})

	t.Run("KeyedDigestsDiffer", func(t *testing.T) {
		a, err := NewHMACSHA256("key-one").Hash("123456")
		if err != nil {
			t.Fatalf("hash failed: %v", err)
		}
		b, err := NewHMACSHA256("key-two").Hash("123456")
		if err != nil {
			t.Fatalf("hash failed: %v", err)
		}

		if string(a) == string(b) {
			t.Fatalf("different keys must produce different digests")
		}
	})
}
