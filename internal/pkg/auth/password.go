package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost trades login latency for brute-force resistance.
const passwordHashCost = 12

// HashPassword derives the bcrypt hash stored for an account. The
// plaintext is never persisted.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
