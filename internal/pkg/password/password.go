package password

import (
	"golang.org/x/crypto/bcrypt"
)

const cost = 12

// Hash hashes a plaintext password with bcrypt
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// Verify reports whether password matches the stored hash
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
