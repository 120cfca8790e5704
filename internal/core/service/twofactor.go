package service

import (
	"context"
	"log/slog"
	"time"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
)

// TwoFactorService drives the per-user 2FA state machine:
// no secret -> secret generated -> enabled, and back to no secret on disable.
type TwoFactorService struct {
	users  port.UserService
	signer port.TokenSigner
	otp    port.OtpEngine
}

func NewTwoFactorService(users port.UserService, signer port.TokenSigner, otp port.OtpEngine) *TwoFactorService {
	return &TwoFactorService{users: users, signer: signer, otp: otp}
}

// GenerateSecret mints a fresh secret and renders the provisioning QR code.
// Regenerating replaces any prior unconfirmed secret; the enabled flag only
// flips in Enable after a code round-trip.
func (ts *TwoFactorService) GenerateSecret(ctx context.Context, user *domain.User) (*response.QrCodeResponse, error) {
	if user.IsOAuthUser {
		return nil, domain.ErrOAuthUserTwoFactor
	}

	secret, err := ts.otp.GenerateSecret()

	if err != nil {
		return nil, err
	}

	uri := ts.otp.ProvisioningURI(secret, user.Email)

	qrCodeUrl, err := ts.otp.QRCodeDataURL(uri)

	if err != nil {
		return nil, err
	}

	user.TwoFactorSecret = secret

	if _, err := ts.users.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}

	return &response.QrCodeResponse{QrCodeUrl: qrCodeUrl}, nil
}

func (ts *TwoFactorService) Enable(ctx context.Context, user *domain.User, otpCode string) (string, error) {
	if user.IsOAuthUser {
		return "", domain.ErrOAuthUserTwoFactor
	}

	if !user.HasTwoFactorSecret() {
		return "", domain.ErrTwoFactorSecretMissing
	}

	if err := ts.verifyOtpCode(user, otpCode); err != nil {
		return "", err
	}

	user.IsTwoFactorEnabled = true

	if _, err := ts.users.UpdateUser(ctx, *user); err != nil {
		return "", err
	}

	return "2FA enabled successfully.", nil
}

func (ts *TwoFactorService) Disable(ctx context.Context, user *domain.User, otpCode string) (string, error) {
	if user.IsOAuthUser {
		return "", domain.ErrOAuthUserTwoFactor
	}

	if !user.IsTwoFactorEnabled {
		return "", domain.ErrTwoFactorNotSetUp
	}

	if err := ts.verifyOtpCode(user, otpCode); err != nil {
		return "", err
	}

	user.TwoFactorSecret = ""
	user.IsTwoFactorEnabled = false

	if _, err := ts.users.UpdateUser(ctx, *user); err != nil {
		return "", err
	}

	return "2FA disabled successfully.", nil
}

// SignInWith2FA is unauthenticated, so an unknown email fails Unauthorized
// rather than NotFound.
func (ts *TwoFactorService) SignInWith2FA(ctx context.Context, email string, otpCode string) (*response.AccessTokenResponse, error) {
	user, err := ts.users.GetUserByEmail(ctx, email)

	if err != nil {
		slog.Error("TwoFactor#SignInWith2FA", "reason", "user_not_found")
		return nil, domain.ErrInvalidOtpCode
	}

	if err := ts.verifyOtpCode(&user, otpCode); err != nil {
		return nil, err
	}

	accessToken, err := ts.signer.Issue(user.UUID.String(), user.Email)

	if err != nil {
		return nil, err
	}

	return &response.AccessTokenResponse{AccessToken: accessToken}, nil
}

func (ts *TwoFactorService) verifyOtpCode(user *domain.User, otpCode string) error {
	if !user.HasTwoFactorSecret() {
		return domain.ErrTwoFactorNotSetUp
	}

	if !ts.otp.Verify(user.TwoFactorSecret, otpCode, time.Now()) {
		return domain.ErrInvalidOtpCode
	}

	return nil
}
