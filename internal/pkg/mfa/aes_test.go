package mfa

import (
	"bytes"
	"errors"
	"testing"
)

func testEncryptor() *AESGCMEncryptor {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i + 1)
	}
	return NewAESGCMEncryptor(StaticKeyProvider{KeyBytes: key})
}

func TestAESGCMEncryptor(t *testing.T) {
	scope := Scope{AccountID: 42, Purpose: PurposeOTPSeed}

	t.Run("RoundTrip", func(t *testing.T) {
		// Arrange
		e := testEncryptor()
		plain := []byte("JBSWY3DPEHPK3PXP")

		// Act
		sealed, err := e.Encrypt(plain, scope)
		if err != nil {
			t.Fatalf("encrypt failed: %v", err)
		}
		got, err := e.Decrypt(sealed, scope)

		// Assert
		if err != nil {
			t.Fatalf("decrypt failed: %v", err)
		}
		if !bytes.Equal(got, plain) {
			t.Fatalf("round trip mismatch: got %q", got)
		}
	})

	t.Run("WrongScopeFails", func(t *testing.T) {
		// Arrange
		e := testEncryptor()
		sealed, err := e.Encrypt([]byte("JBSWY3DPEHPK3PXP"), scope)
		if err != nil {
			t.Fatalf("encrypt failed: %v", err)
		}

		// Act
		_, err = e.Decrypt(sealed, Scope{AccountID: 43, Purpose: PurposeOTPSeed})

		// Assert
		if !errors.Is(err, ErrDecryptFailed) {
			t.Fatalf("ciphertext moved to another account must not decrypt, got %v", err)
		}
	})

	t.Run("TamperedCiphertextFails", func(t *testing.T) {
		// Arrange
		e := testEncryptor()
		sealed, err := e.Encrypt([]byte("JBSWY3DPEHPK3PXP"), scope)
		if err != nil {
			t.Fatalf("encrypt failed: %v", err)
		}
		sealed[len(sealed)-1] ^= 0x01

		// Act
		_, err = e.Decrypt(sealed, scope)

		// Assert
		if !errors.Is(err, ErrDecryptFailed) {
			t.Fatalf("tampered ciphertext must not decrypt, got %v", err)
		}
	})

	t.Run("NoncesMakeCiphertextsUnique", func(t *testing.T) {
		e := testEncryptor()

		a, err := e.Encrypt([]byte("same-secret"), scope)
		if err != nil {
			t.Fatalf("encrypt failed: %v", err)
		}
		b, err := e.Encrypt([]byte("same-secret"), scope)
		if err != nil {
			t.Fatalf("encrypt failed: %v", err)
		}

		if bytes.Equal(a, b) {
			t.Fatalf("two encryptions of the same input must differ")
		}
	})

	t.Run("EmptyPlaintext", func(t *testing.T) {
		if _, err := testEncryptor().Encrypt(nil, scope); !errors.Is(err, ErrPlaintextEmpty) {
			t.Fatalf("expected ErrPlaintextEmpty, got %v", err)
		}
	})

	t.Run("ShortCiphertext", func(t *testing.T) {
		if _, err := testEncryptor().Decrypt([]byte{0, 1, 2}, scope); !errors.Is(err, ErrCiphertextTooShort) {
			t.Fatalf("expected ErrCiphertextTooShort, got %v", err)
		}
	})

	t.Run("UnsupportedVersion", func(t *testing.T) {
		// Arrange
		e := testEncryptor()
		sealed, err := e.Encrypt([]byte("JBSWY3DPEHPK3PXP"), scope)
		if err != nil {
			t.Fatalf("encrypt failed: %v", err)
		}
		sealed[0] = 0xFF

		// Act & Assert
		if _, err := e.Decrypt(sealed, scope); !errors.Is(err, ErrUnsupportedCiphertextVersion) {
			t.Fatalf("expected ErrUnsupportedCiphertextVersion, got %v", err)
		}
	})

	t.Run("BadKeyLength", func(t *testing.T) {
		e := NewAESGCMEncryptor(StaticKeyProvider{KeyBytes: []byte("too-short")})

		if _, err := e.Encrypt([]byte("x"), scope); !errors.Is(err, ErrInvalidKeyLength) {
			t.Fatalf("expected ErrInvalidKeyLength, got %v", err)
		}
	})
}
