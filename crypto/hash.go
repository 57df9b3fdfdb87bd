// Package crypto provides password hashing for customer and staff accounts.
package crypto

import (
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a given password using bcrypt.
func HashPassword(password string, iterations int) (string, error) {
	result, err := bcrypt.GenerateFromPassword([]byte(password), iterations)

	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(result), nil
}

// CompareHashAndPassword reports whether the password matches the base64
// encoded bcrypt hash.
func CompareHashAndPassword(hash, password string) (bool, error) {
	decoded, err := base64.StdEncoding.DecodeString(hash)
	if err != nil {
		return false, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(decoded), []byte(password))

	return err == nil, err
}
