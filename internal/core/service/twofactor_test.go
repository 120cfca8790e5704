package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/port"
	"taskapp/internal/core/service"
	"taskapp/internal/core/telemetry"
	"taskapp/pkg/auth"
	"taskapp/pkg/otp"
	"taskapp/pkg/test"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TwoFactorServiceTestSuite struct {
	suite.Suite
	users   port.UserService
	authSvc port.AuthService
	svc     port.TwoFactorService
	engine  *otp.Engine
}

func (s *TwoFactorServiceTestSuite) SetupTest() {
	db := test.InitTestDB()
	repo := repository.NewUserRepository(db, telemetry.NewNoOpProbe())

	signer := &auth.JWT{Secret: "test-secret", ExpiresIn: time.Hour}
	s.engine = otp.NewEngine(otp.Config{Issuer: "Task Management", Skew: 1})

	s.users = service.NewUserService(repo)
	s.authSvc = service.NewAuthService(s.users, signer)
	s.svc = service.NewTwoFactorService(s.users, signer, s.engine)
}

func TestTwoFactorServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TwoFactorServiceTestSuite))
}

func (s *TwoFactorServiceTestSuite) signUp(email string) *domain.User {
	user, err := s.authSvc.SignUp(context.Background(), &request.SignUpRequest{
		Email:    email,
		Password: "12345678",
	})

	assert.NoError(s.T(), err)

	return user
}

// reload fetches the persisted state, since handlers always operate on the
// user attached by the auth middleware.
func (s *TwoFactorServiceTestSuite) reload(email string) domain.User {
	user, err := s.users.GetUserByEmail(context.Background(), email)
	assert.NoError(s.T(), err)

	return user
}

func (s *TwoFactorServiceTestSuite) currentCode(secret string) string {
	code, err := s.engine.CodeAt(secret, time.Now())
	assert.NoError(s.T(), err)

	return code
}

func (s *TwoFactorServiceTestSuite) TestGenerateSecret_StoresSecretWithoutEnabling() {
	user := s.signUp("test@example.com")

	qr, err := s.svc.GenerateSecret(context.Background(), user)

	assert.NoError(s.T(), err)
	assert.True(s.T(), strings.HasPrefix(qr.QrCodeUrl, "data:image/png;base64,"))

	persisted := s.reload("test@example.com")
	assert.NotEmpty(s.T(), persisted.TwoFactorSecret)
	assert.False(s.T(), persisted.IsTwoFactorEnabled)
}

func (s *TwoFactorServiceTestSuite) TestGenerateSecret_ReplacesPreviousSecret() {
	user := s.signUp("test@example.com")

	_, err := s.svc.GenerateSecret(context.Background(), user)
	assert.NoError(s.T(), err)
	first := s.reload("test@example.com")

	refreshed := first
	_, err = s.svc.GenerateSecret(context.Background(), &refreshed)
	assert.NoError(s.T(), err)
	second := s.reload("test@example.com")

	assert.NotEqual(s.T(), first.TwoFactorSecret, second.TwoFactorSecret)
}

func (s *TwoFactorServiceTestSuite) TestEnable_WithValidCode() {
	s.signUp("test@example.com")
	user := s.reload("test@example.com")

	_, err := s.svc.GenerateSecret(context.Background(), &user)
	assert.NoError(s.T(), err)

	user = s.reload("test@example.com")
	message, err := s.svc.Enable(context.Background(), &user, s.currentCode(user.TwoFactorSecret))

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "2FA enabled successfully.", message)
	assert.True(s.T(), s.reload("test@example.com").IsTwoFactorEnabled)
}

func (s *TwoFactorServiceTestSuite) TestEnable_WrongCodeLeavesItDisabled() {
	s.signUp("test@example.com")
	user := s.reload("test@example.com")

	_, err := s.svc.GenerateSecret(context.Background(), &user)
	assert.NoError(s.T(), err)

	user = s.reload("test@example.com")
	_, err = s.svc.Enable(context.Background(), &user, "000000")

	assert.Error(s.T(), err)
	Expect(errors.Is(err, domain.ErrInvalidOtpCode)).To(BeTrue())
	assert.False(s.T(), s.reload("test@example.com").IsTwoFactorEnabled)
}

func (s *TwoFactorServiceTestSuite) TestEnable_WithoutGeneratedSecret() {
	user := s.signUp("test@example.com")

	_, err := s.svc.Enable(context.Background(), user, "123456")

	assert.Error(s.T(), err)
	Expect(errors.Is(err, domain.ErrTwoFactorSecretMissing)).To(BeTrue())
}

func (s *TwoFactorServiceTestSuite) TestDisable_ClearsSecretAndFlag() {
	s.signUp("test@example.com")
	user := s.reload("test@example.com")

	_, err := s.svc.GenerateSecret(context.Background(), &user)
	assert.NoError(s.T(), err)

	user = s.reload("test@example.com")
	_, err = s.svc.Enable(context.Background(), &user, s.currentCode(user.TwoFactorSecret))
	assert.NoError(s.T(), err)

	enabled := s.reload("test@example.com")
	message, err := s.svc.Disable(context.Background(), &enabled, s.currentCode(enabled.TwoFactorSecret))

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "2FA disabled successfully.", message)

	persisted := s.reload("test@example.com")
	assert.False(s.T(), persisted.IsTwoFactorEnabled)
	assert.Empty(s.T(), persisted.TwoFactorSecret)
}

func (s *TwoFactorServiceTestSuite) TestDisable_WhenNotEnabled() {
	user := s.signUp("test@example.com")

	_, err := s.svc.Disable(context.Background(), user, "123456")

	assert.Error(s.T(), err)
	Expect(errors.Is(err, domain.ErrTwoFactorNotSetUp)).To(BeTrue())
}

func (s *TwoFactorServiceTestSuite) TestGenerateSecret_RejectsOAuthUser() {
	user, err := s.users.CreateOAuthUser(context.Background(), "oauth@example.com")
	assert.NoError(s.T(), err)

	_, err = s.svc.GenerateSecret(context.Background(), &user)

	assert.Error(s.T(), err)
	Expect(errors.Is(err, domain.ErrOAuthUserTwoFactor)).To(BeTrue())
}

func (s *TwoFactorServiceTestSuite) TestEnable_RejectsOAuthUser() {
	user, err := s.users.CreateOAuthUser(context.Background(), "oauth@example.com")
	assert.NoError(s.T(), err)

	_, err = s.svc.Enable(context.Background(), &user, "123456")

	assert.Error(s.T(), err)
	Expect(errors.Is(err, domain.ErrOAuthUserTwoFactor)).To(BeTrue())
}

func (s *TwoFactorServiceTestSuite) TestSignInWith2FA_IssuesToken() {
	s.signUp("test@example.com")
	user := s.reload("test@example.com")

	_, err := s.svc.GenerateSecret(context.Background(), &user)
	assert.NoError(s.T(), err)

	user = s.reload("test@example.com")
	_, err = s.svc.Enable(context.Background(), &user, s.currentCode(user.TwoFactorSecret))
	assert.NoError(s.T(), err)

	enabled := s.reload("test@example.com")
	token, err := s.svc.SignInWith2FA(context.Background(), "test@example.com", s.currentCode(enabled.TwoFactorSecret))

	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), token.AccessToken)

	signer := &auth.JWT{Secret: "test-secret", ExpiresIn: time.Hour}
	claims, err := signer.Verify(token.AccessToken)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), enabled.UUID.String(), claims["sub"])
}

func (s *TwoFactorServiceTestSuite) TestSignInWith2FA_WrongCode() {
	s.signUp("test@example.com")
	user := s.reload("test@example.com")

	_, err := s.svc.GenerateSecret(context.Background(), &user)
	assert.NoError(s.T(), err)

	user = s.reload("test@example.com")
	_, err = s.svc.Enable(context.Background(), &user, s.currentCode(user.TwoFactorSecret))
	assert.NoError(s.T(), err)

	_, err = s.svc.SignInWith2FA(context.Background(), "test@example.com", "000000")

	assert.Error(s.T(), err)
	Expect(errors.Is(err, domain.ErrInvalidOtpCode)).To(BeTrue())
}

func (s *TwoFactorServiceTestSuite) TestSignInWith2FA_UnknownEmailLooksLikeBadCode() {
	_, err := s.svc.SignInWith2FA(context.Background(), "nobody@example.com", "123456")

	assert.Error(s.T(), err)
	Expect(errors.Is(err, domain.ErrInvalidOtpCode)).To(BeTrue())
}
