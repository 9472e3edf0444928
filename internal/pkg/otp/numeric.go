package otp

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const digitRunes = "0123456789"

// CodeGenerator produces random numeric codes for out-of-band delivery.
type CodeGenerator interface {
	// Generate returns a fixed-width numeric code string.
	Generate() (string, error)
}

// NumericCode generates codes of a fixed length where every digit is drawn
// independently and uniformly from crypto/rand. Leading zeros are ordinary
// digits, so the width never varies.
type NumericCode struct {
	length int
}

// NewNumericCode returns a generator for codes of the given length.
// Lengths outside 4..10 fall back to 6.
func NewNumericCode(length int) *NumericCode {
	if length < 4 || length > 10 {
		length = 6
	}
	return &NumericCode{length: length}
}

// Generate returns a new random code.
func (n *NumericCode) Generate() (string, error) {
	var sb strings.Builder
	sb.Grow(n.length)

	ten := big.NewInt(int64(len(digitRunes)))
	for i := 0; i < n.length; i++ {
		idx, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		sb.WriteByte(digitRunes[idx.Int64()])
	}

	return sb.String(), nil
}

// Length returns the fixed code width.
func (n *NumericCode) Length() int {
	return n.length
}

// IsWellFormed reports whether code has exactly the expected width and only
// digits.
func (n *NumericCode) IsWellFormed(code string) bool {
	if len(code) != n.length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
