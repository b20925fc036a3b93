// Package cryptox wraps password hashing for docsim. Hashes are bcrypt with a
// random per-call salt, so hashing the same plaintext twice yields different
// strings that both verify.
package cryptox

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the work factor used when no cost is configured.
const DefaultCost = 10

// HashPassword returns the bcrypt hash of password at the given cost.
// A cost outside bcrypt's range falls back to DefaultCost.
func HashPassword(password []byte, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword(password, cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches hash. bcrypt compares the
// derived keys in constant time.
func VerifyPassword(password []byte, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), password)
	return err == nil
}

// DummyHash hashes a random secret at cost. Login compares against it when
// the email is unknown, so both failure paths spend the same bcrypt time.
func DummyHash(cost int) (string, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return "", err
	}
	return HashPassword(secret, cost)
}

// IsTooLong reports the one input bcrypt refuses outright.
func IsTooLong(err error) bool {
	return errors.Is(err, bcrypt.ErrPasswordTooLong)
}
