package service

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a one-way digest from the plaintext. bcrypt embeds a
// random salt, so two calls with the same plaintext produce different digests.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext re-hashes to digest. A malformed
// digest is treated as a mismatch, never an error.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
