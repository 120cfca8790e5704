package util

import "golang.org/x/crypto/bcrypt"

func GenerateEncrypt(password string) (string, error) {
	encrypted, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(encrypted), nil
}

// ComparePassword treats an empty stored hash as a hard mismatch, so
// password login against an OAuth-only account can never succeed.
func ComparePassword(password, encrypted string) error {
	if encrypted == "" {
		return bcrypt.ErrMismatchedHashAndPassword
	}

	return bcrypt.CompareHashAndPassword([]byte(encrypted), []byte(password))
}
