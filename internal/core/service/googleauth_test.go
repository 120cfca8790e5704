package service_test

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"taskapp/internal/adapter/cache/memory"
	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/core/port"
	"taskapp/internal/core/service"
	"taskapp/internal/core/telemetry"
	"taskapp/pkg/auth"
	"taskapp/pkg/test"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type GoogleAuthServiceTestSuite struct {
	suite.Suite
	users port.UserService
	codes port.CodeStore
	svc   port.GoogleAuthService
}

func (s *GoogleAuthServiceTestSuite) SetupTest() {
	db := test.InitTestDB()
	repo := repository.NewUserRepository(db, telemetry.NewNoOpProbe())

	signer := &auth.JWT{Secret: "test-secret", ExpiresIn: time.Hour}

	s.users = service.NewUserService(repo)
	s.codes = memory.NewCodeStore()
	s.svc = service.NewGoogleAuthService(s.users, signer, s.codes, "http://localhost:5173", 5*time.Minute)
}

func TestGoogleAuthServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(GoogleAuthServiceTestSuite))
}

func (s *GoogleAuthServiceTestSuite) TestValidateGoogleUser_ProvisionsPasswordlessAccount() {
	user, err := s.svc.ValidateGoogleUser(context.Background(), "oauth@example.com")

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "oauth@example.com", user.Email)
	assert.True(s.T(), user.IsOAuthUser)
	assert.Empty(s.T(), user.EncryptedPassword)
}

func (s *GoogleAuthServiceTestSuite) TestValidateGoogleUser_ReusesExistingAccount() {
	first, err := s.svc.ValidateGoogleUser(context.Background(), "oauth@example.com")
	assert.NoError(s.T(), err)

	second, err := s.svc.ValidateGoogleUser(context.Background(), "oauth@example.com")
	assert.NoError(s.T(), err)

	assert.Equal(s.T(), first.UUID, second.UUID)
}

func (s *GoogleAuthServiceTestSuite) TestCompleteLogin_BuildsCallbackURL() {
	user, err := s.svc.ValidateGoogleUser(context.Background(), "oauth@example.com")
	assert.NoError(s.T(), err)

	redirect, err := s.svc.CompleteLogin(context.Background(), user)

	assert.NoError(s.T(), err)
	assert.True(s.T(), strings.HasPrefix(redirect, "http://localhost:5173/auth/callback?code="))

	code := strings.TrimPrefix(redirect, "http://localhost:5173/auth/callback?code=")
	// 16 random bytes hex encoded.
	assert.Len(s.T(), code, 32)
}

func (s *GoogleAuthServiceTestSuite) TestExchangeCode_IssuesTokenOnce() {
	user, err := s.svc.ValidateGoogleUser(context.Background(), "oauth@example.com")
	assert.NoError(s.T(), err)

	redirect, err := s.svc.CompleteLogin(context.Background(), user)
	assert.NoError(s.T(), err)

	code := strings.TrimPrefix(redirect, "http://localhost:5173/auth/callback?code=")

	token, err := s.svc.ExchangeCode(context.Background(), code)
	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), token.AccessToken)

	signer := &auth.JWT{Secret: "test-secret", ExpiresIn: time.Hour}
	claims, err := signer.Verify(token.AccessToken)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), user.UUID.String(), claims["sub"])

	// A replayed code is spent: no error, no token.
	token, err = s.svc.ExchangeCode(context.Background(), code)
	assert.NoError(s.T(), err)
	assert.Nil(s.T(), token)
}

func (s *GoogleAuthServiceTestSuite) TestExchangeCode_UnknownCode() {
	token, err := s.svc.ExchangeCode(context.Background(), "deadbeefdeadbeefdeadbeefdeadbeef")

	assert.NoError(s.T(), err)
	assert.Nil(s.T(), token)
}

func (s *GoogleAuthServiceTestSuite) TestExchangeCode_ExpiredCode() {
	user, err := s.svc.ValidateGoogleUser(context.Background(), "oauth@example.com")
	assert.NoError(s.T(), err)

	err = s.codes.Put(context.Background(), "shortlived", user.UUID.String(), time.Millisecond)
	assert.NoError(s.T(), err)

	time.Sleep(5 * time.Millisecond)

	token, err := s.svc.ExchangeCode(context.Background(), "shortlived")

	assert.NoError(s.T(), err)
	assert.Nil(s.T(), token)
}

func (s *GoogleAuthServiceTestSuite) TestExchangeCode_ConcurrentCallersSingleWinner() {
	user, err := s.svc.ValidateGoogleUser(context.Background(), "oauth@example.com")
	assert.NoError(s.T(), err)

	redirect, err := s.svc.CompleteLogin(context.Background(), user)
	assert.NoError(s.T(), err)

	code := strings.TrimPrefix(redirect, "http://localhost:5173/auth/callback?code=")

	var wins int64
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if token, err := s.svc.ExchangeCode(context.Background(), code); err == nil && token != nil {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(s.T(), int64(1), wins)
}
