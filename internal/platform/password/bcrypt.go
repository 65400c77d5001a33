// Package password provides bcrypt-based password hashing.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is the bcrypt cost factor applied to new hashes.
const hashCost = 10

// BcryptHasher hashes and verifies passwords using bcrypt.
// It holds no state and is safe for concurrent use.
type BcryptHasher struct{}

// NewBcryptHasher creates a new BcryptHasher.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

// Hash generates a salted bcrypt hash of the plaintext password.
// A fresh random salt is generated on every call and encoded into the
// returned hash.
func (*BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored bcrypt hash.
// The comparison uses the salt embedded in the hash and is constant-time
// inside bcrypt. It returns false for any mismatch or malformed hash.
func (*BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
