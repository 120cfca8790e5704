package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Services wrap these so the HTTP layer can pick a status code
// with errors.Is without inspecting message text.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
)

var (
	// ErrInvalidCredentials covers both unknown email and password mismatch,
	// so responses never reveal which emails are registered.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)

	ErrInvalidOtpCode         = fmt.Errorf("%w: invalid 2FA code", ErrUnauthorized)
	ErrTwoFactorNotSetUp      = fmt.Errorf("%w: 2FA is not set up for this account", ErrUnauthorized)
	ErrTwoFactorSecretMissing = fmt.Errorf("%w: 2FA secret not found, generate it first", ErrUnauthorized)
	ErrOAuthUserTwoFactor     = fmt.Errorf("%w: OAuth users can't use 2FA", ErrBadRequest)

	ErrEmailAlreadyExists = fmt.Errorf("%w: user with this email already exists", ErrConflict)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrTaskNotFound       = fmt.Errorf("%w: task not found", ErrNotFound)
)

// ErrorMessage strips the kind prefix so responses carry only the
// human-readable part.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	for _, kind := range []error{ErrUnauthorized, ErrBadRequest, ErrConflict, ErrNotFound} {
		prefix := kind.Error() + ": "

		if strings.HasPrefix(msg, prefix) {
			return msg[len(prefix):]
		}
	}

	return msg
}
