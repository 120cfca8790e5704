package auth_test

import (
	"testing"
	"time"

	"taskapp/pkg/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWT_IssueAndVerify(t *testing.T) {
	jwt := &auth.JWT{Secret: "test-secret", ExpiresIn: time.Hour}

	subject := uuid.New().String()

	token, err := jwt.Issue(subject, "user@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwt.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, subject, claims["sub"])
	assert.Equal(t, "user@example.com", claims["email"])
}

func TestJWT_VerifyRejectsWrongSecret(t *testing.T) {
	jwt := &auth.JWT{Secret: "test-secret", ExpiresIn: time.Hour}

	token, err := jwt.Issue(uuid.New().String(), "user@example.com")
	assert.NoError(t, err)

	other := &auth.JWT{Secret: "another-secret", ExpiresIn: time.Hour}

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestJWT_VerifyRejectsExpiredToken(t *testing.T) {
	jwt := &auth.JWT{Secret: "test-secret", ExpiresIn: -time.Minute}

	token, err := jwt.Issue(uuid.New().String(), "user@example.com")
	assert.NoError(t, err)

	_, err = jwt.Verify(token)
	assert.Error(t, err)
}

func TestJWT_VerifyRejectsGarbage(t *testing.T) {
	jwt := &auth.JWT{Secret: "test-secret", ExpiresIn: time.Hour}

	_, err := jwt.Verify("not-a-token")
	assert.Error(t, err)
}
