// Package auth implements the operator password check and the session token service.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// VerifyPassword reports whether the submitted password matches the stored bcrypt hash.
// The hash encodes its own salt and cost factor and the comparison runs in constant time.
// Every failure mode collapses to false; the submitted value is never logged or retained.
func VerifyPassword(submitted, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(submitted)) == nil
}

// ValidatePasswordHash verifies that the configured operator password hash is a well-formed bcrypt hash.
// It runs once at startup; a malformed hash refuses to start the process instead of failing every login.
func ValidatePasswordHash(storedHash string) error {
	if _, err := bcrypt.Cost([]byte(storedHash)); err != nil {
		return fmt.Errorf("malformed operator password hash: %w", err)
	}
	return nil
}
