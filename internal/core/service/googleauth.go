package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
)

// GoogleAuthService bridges the OAuth callback to the SPA via short-lived
// one-time exchange codes, so the access token never rides in a redirect URL.
type GoogleAuthService struct {
	users          port.UserService
	signer         port.TokenSigner
	codes          port.CodeStore
	frontendOrigin string
	codeTTL        time.Duration
}

func NewGoogleAuthService(users port.UserService, signer port.TokenSigner, codes port.CodeStore, frontendOrigin string, codeTTL time.Duration) *GoogleAuthService {
	return &GoogleAuthService{
		users:          users,
		signer:         signer,
		codes:          codes,
		frontendOrigin: frontendOrigin,
		codeTTL:        codeTTL,
	}
}

// ValidateGoogleUser finds the account for a Google profile email,
// provisioning a passwordless one on first login.
func (gs *GoogleAuthService) ValidateGoogleUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := gs.users.GetUserByEmail(ctx, email)

	if err == nil {
		return &user, nil
	}

	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	created, err := gs.users.CreateOAuthUser(ctx, email)

	if err != nil {
		return nil, err
	}

	slog.Info("GoogleAuth#ValidateGoogleUser", "event", "oauth_user_created")

	return &created, nil
}

// CompleteLogin stores a one-time code for the user and returns the frontend
// callback URL carrying it.
func (gs *GoogleAuthService) CompleteLogin(ctx context.Context, user *domain.User) (string, error) {
	buf := make([]byte, 16)

	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	code := hex.EncodeToString(buf)

	if err := gs.codes.Put(ctx, code, user.UUID.String(), gs.codeTTL); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/auth/callback?code=%s", gs.frontendOrigin, code), nil
}

// ExchangeCode consumes a one-time code and issues the access token. A code
// is spent on first use; replays and expired codes yield a nil token rather
// than an error, so the endpoint answers them with a null body.
func (gs *GoogleAuthService) ExchangeCode(ctx context.Context, code string) (*response.AccessTokenResponse, error) {
	userUUID, found, err := gs.codes.Take(ctx, code)

	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	user, err := gs.users.GetUserByUUID(ctx, userUUID)

	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	accessToken, err := gs.signer.Issue(user.UUID.String(), user.Email)

	if err != nil {
		return nil, err
	}

	return &response.AccessTokenResponse{AccessToken: accessToken}, nil
}
