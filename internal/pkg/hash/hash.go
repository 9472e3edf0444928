package hash

import "errors"

// ErrEmptyPlaintext is returned by Hash implementations for empty input.
var ErrEmptyPlaintext = errors.New("hash: plaintext is empty")

// Hash is the contract for hashing and verifying secrets.
type Hash interface {
	// Hash returns the stored representation of plaintext.
	Hash(plaintext string) ([]byte, error)
	// Verify reports whether plaintext matches the stored hash.
	// It returns false (never an error) on malformed hashed input.
	Verify(hashed, plaintext string) bool
}
