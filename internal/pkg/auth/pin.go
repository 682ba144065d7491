// internal/pkg/auth/pin.go
package auth

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidPIN is returned when the supervisor PIN does not match
var ErrInvalidPIN = errors.New("invalid supervisor PIN")

// PINCost is the bcrypt cost used for supervisor PINs
const PINCost = 12

// PINManager checks the supervisor PIN that guards closing a shift.
// An empty hash disables the check.
type PINManager struct {
	hash string
}

// NewPINManager creates a PIN manager for a bcrypt hash
func NewPINManager(hash string) *PINManager {
	return &PINManager{hash: hash}
}

// Enabled reports whether a PIN is required
func (p *PINManager) Enabled() bool {
	return p.hash != ""
}

// Check verifies pin against the configured hash
func (p *PINManager) Check(pin string) error {
	if !p.Enabled() {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.hash), []byte(pin)); err != nil {
		return ErrInvalidPIN
	}
	return nil
}

// ValidatePIN requires 4 to 8 digits
func ValidatePIN(pin string) error {
	if len(pin) < 4 || len(pin) > 8 {
		return fmt.Errorf("PIN must be 4 to 8 digits long")
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("PIN must contain digits only")
		}
	}
	return nil
}

// HashPIN validates and hashes a PIN with bcrypt
func HashPIN(pin string) (string, error) {
	if err := ValidatePIN(pin); err != nil {
		return "", fmt.Errorf("PIN validation failed: %w", err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), PINCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}
	return string(hashed), nil
}
