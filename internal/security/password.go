package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Derivation parameters are fixed constants shared by hashing and
// verification. Changing them invalidates every stored hash.
const (
	pbkdf2Iterations = 210_000
	keyLength        = 32
	saltLength       = 16
)

// HashPassword derives a key from the password with a fresh random salt.
func HashPassword(password string) (hash, salt []byte, err error) {
	salt = make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	hash = pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLength, sha256.New)
	return hash, salt, nil
}

// VerifyPassword reports whether the password matches the stored hash.
// Comparison is constant-time.
func VerifyPassword(password string, hash, salt []byte) bool {
	if len(hash) == 0 || len(salt) == 0 {
		return false
	}
	derived := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLength, sha256.New)
	return subtle.ConstantTimeCompare(derived, hash) == 1
}
