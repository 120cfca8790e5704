package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/port"
	"taskapp/internal/core/service"
	"taskapp/internal/core/telemetry"
	"taskapp/pkg/auth"
	"taskapp/pkg/test"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	users   port.UserService
	authSvc port.AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	db := test.InitTestDB()
	repo := repository.NewUserRepository(db, telemetry.NewNoOpProbe())

	signer := &auth.JWT{Secret: "test-secret", ExpiresIn: time.Hour}

	s.users = service.NewUserService(repo)
	s.authSvc = service.NewAuthService(s.users, signer)
}

func TestAuthServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) signUp(email string) *domain.User {
	user, err := s.authSvc.SignUp(context.Background(), &request.SignUpRequest{
		Email:    email,
		Password: "12345678",
	})

	assert.NoError(s.T(), err)

	return user
}

func (s *AuthServiceTestSuite) TestSignUp_Success() {
	user := s.signUp("test@example.com")

	assert.Equal(s.T(), "test@example.com", user.Email)
	assert.NotEmpty(s.T(), user.UUID)
	assert.Equal(s.T(), domain.Member, user.Role)
	assert.False(s.T(), user.IsTwoFactorEnabled)
	// The hash must never equal the raw password.
	assert.NotEqual(s.T(), "12345678", user.EncryptedPassword)
}

func (s *AuthServiceTestSuite) TestSignUp_DuplicateEmailConflicts() {
	s.signUp("test@example.com")

	_, err := s.authSvc.SignUp(context.Background(), &request.SignUpRequest{
		Email:    "test@example.com",
		Password: "12345678",
	})

	assert.Error(s.T(), err)
	Expect(errors.Is(err, domain.ErrConflict)).To(BeTrue())
}

func (s *AuthServiceTestSuite) TestSignIn_ReturnsAccessToken() {
	s.signUp("test@example.com")

	result, err := s.authSvc.SignIn(context.Background(), &request.LoginRequest{
		Email:    "test@example.com",
		Password: "12345678",
	})

	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), result.AccessToken)
	assert.False(s.T(), result.Requires2FA)
	assert.Empty(s.T(), result.Email)
}

func (s *AuthServiceTestSuite) TestSignIn_UnknownEmailAndWrongPasswordLookAlike() {
	s.signUp("test@example.com")

	_, unknownErr := s.authSvc.SignIn(context.Background(), &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: "12345678",
	})

	_, wrongErr := s.authSvc.SignIn(context.Background(), &request.LoginRequest{
		Email:    "test@example.com",
		Password: "wrong-password",
	})

	assert.Error(s.T(), unknownErr)
	assert.Error(s.T(), wrongErr)

	// Identical failures so responses don't reveal which emails exist.
	assert.Equal(s.T(), unknownErr.Error(), wrongErr.Error())
	Expect(errors.Is(unknownErr, domain.ErrUnauthorized)).To(BeTrue())
	Expect(errors.Is(wrongErr, domain.ErrUnauthorized)).To(BeTrue())
}

func (s *AuthServiceTestSuite) TestSignIn_TwoFactorEnabledReturnsChallenge() {
	user := s.signUp("test@example.com")

	user.TwoFactorSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"
	user.IsTwoFactorEnabled = true

	_, err := s.users.UpdateUser(context.Background(), *user)
	assert.NoError(s.T(), err)

	result, err := s.authSvc.SignIn(context.Background(), &request.LoginRequest{
		Email:    "test@example.com",
		Password: "12345678",
	})

	assert.NoError(s.T(), err)
	assert.True(s.T(), result.Requires2FA)
	assert.Equal(s.T(), "test@example.com", result.Email)
	// No token until the second factor is presented.
	assert.Empty(s.T(), result.AccessToken)
}

func (s *AuthServiceTestSuite) TestValidateUser_ReturnsUserOnMatch() {
	created := s.signUp("test@example.com")

	user, err := s.authSvc.ValidateUser(context.Background(), "test@example.com", "12345678")

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), created.UUID, user.UUID)
}

func (s *AuthServiceTestSuite) TestValidateUser_OAuthOnlyAccountRejectsPassword() {
	_, err := s.users.CreateOAuthUser(context.Background(), "oauth@example.com")
	assert.NoError(s.T(), err)

	_, err = s.authSvc.ValidateUser(context.Background(), "oauth@example.com", "12345678")

	assert.Error(s.T(), err)
	Expect(errors.Is(err, domain.ErrUnauthorized)).To(BeTrue())
}

func (s *AuthServiceTestSuite) TestIssueToken_SubjectIsUserUUID() {
	user := s.signUp("test@example.com")

	token, err := s.authSvc.IssueToken(user)
	assert.NoError(s.T(), err)

	signer := &auth.JWT{Secret: "test-secret", ExpiresIn: time.Hour}
	claims, err := signer.Verify(token.AccessToken)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), user.UUID.String(), claims["sub"])
	assert.Equal(s.T(), user.Email, claims["email"])
}
