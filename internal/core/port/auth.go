package port

import (
	"context"
	"time"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
)

type AuthService interface {
	SignUp(ctx context.Context, req *request.SignUpRequest) (*domain.User, error)
	SignIn(ctx context.Context, req *request.LoginRequest) (*response.SignInResponse, error)
	ValidateUser(ctx context.Context, email string, password string) (*domain.User, error)
	IssueToken(user *domain.User) (*response.AccessTokenResponse, error)
}

type TwoFactorService interface {
	GenerateSecret(ctx context.Context, user *domain.User) (*response.QrCodeResponse, error)
	Enable(ctx context.Context, user *domain.User, otpCode string) (string, error)
	Disable(ctx context.Context, user *domain.User, otpCode string) (string, error)
	SignInWith2FA(ctx context.Context, email string, otpCode string) (*response.AccessTokenResponse, error)
}

type GoogleAuthService interface {
	ValidateGoogleUser(ctx context.Context, email string) (*domain.User, error)
	CompleteLogin(ctx context.Context, user *domain.User) (string, error)
	ExchangeCode(ctx context.Context, code string) (*response.AccessTokenResponse, error)
}

// TokenSigner issues a signed bearer token for a subject. Verification lives
// with the HTTP middleware, not the core.
type TokenSigner interface {
	Issue(subject string, email string) (string, error)
}

// CodeStore holds one-time exchange codes. Take must be atomic: when several
// callers race on the same code, at most one observes found=true.
type CodeStore interface {
	Put(ctx context.Context, code string, value string, ttl time.Duration) error
	Take(ctx context.Context, code string) (string, bool, error)
}

type OtpEngine interface {
	GenerateSecret() (string, error)
	ProvisioningURI(secret string, account string) string
	QRCodeDataURL(uri string) (string, error)
	Verify(secret string, code string, at time.Time) bool
}
