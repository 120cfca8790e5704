package factory

import (
	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// NewUser builds a user model with a valid uuid and a bcrypt hash of
// "12345678" unless the caller overrides them.
func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	defaults := map[string]any{
		"UUID": uuid.New(),
	}

	encryptedPassword, _ := bcrypt.GenerateFromPassword([]byte("12345678"), bcrypt.DefaultCost)
	defaults["EncryptedPassword"] = string(encryptedPassword)

	for key := range defaults {
		for _, data := range customData {
			if _, exists := data[key]; exists {
				delete(defaults, key)
				break
			}
		}
	}

	// fabricator's Build only honors the first overrides map, so merge
	// defaults and custom data into one map (custom values win).
	merged := map[string]any{}
	for key, value := range defaults {
		merged[key] = value
	}
	for _, data := range customData {
		for key, value := range data {
			merged[key] = value
		}
	}

	return instance.Build(merged)
}
