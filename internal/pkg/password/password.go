// Package password wraps bcrypt hashing for account credentials.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashFailed = errors.New("could not hash password")
	ErrMismatch   = errors.New("password does not match")
)

// hashCost stays at the bcrypt default; raising it invalidates no
// stored hashes but slows login proportionally.
const hashCost = bcrypt.DefaultCost

func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrHashFailed
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	if err != nil {
		return "", ErrHashFailed
	}
	return string(hashed), nil
}

// Verify reports ErrMismatch for both a wrong password and a malformed
// stored hash, so callers cannot distinguish the two.
func Verify(storedHash, plain string) error {
	if storedHash == "" || plain == "" {
		return ErrMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plain)); err != nil {
		return ErrMismatch
	}
	return nil
}
