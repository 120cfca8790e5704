package service

import (
	"context"
	"errors"
	"log/slog"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
)

type AuthService struct {
	users  port.UserService
	signer port.TokenSigner
}

func NewAuthService(users port.UserService, signer port.TokenSigner) *AuthService {
	return &AuthService{users: users, signer: signer}
}

func (as *AuthService) SignUp(ctx context.Context, req *request.SignUpRequest) (*domain.User, error) {
	user, err := as.users.CreateUser(ctx, req.Email, req.Password)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// ValidateUser is the authentication decision point. Unknown email and bad
// password both come back as ErrInvalidCredentials; the real cause is only
// visible in logs.
func (as *AuthService) ValidateUser(ctx context.Context, email string, password string) (*domain.User, error) {
	user, err := as.users.GetUserByEmail(ctx, email)

	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}

		slog.Error("Auth#ValidateUser", "reason", "user_not_found")
		return nil, domain.ErrInvalidCredentials
	}

	if err := util.ComparePassword(password, user.EncryptedPassword); err != nil {
		slog.Error("Auth#ValidateUser", "reason", "password_mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	return &user, nil
}

func (as *AuthService) SignIn(ctx context.Context, req *request.LoginRequest) (*response.SignInResponse, error) {
	user, err := as.ValidateUser(ctx, req.Email, req.Password)

	if err != nil {
		return nil, err
	}

	if user.IsTwoFactorEnabled {
		return &response.SignInResponse{Requires2FA: true, Email: user.Email}, nil
	}

	token, err := as.IssueToken(user)

	if err != nil {
		return nil, err
	}

	return &response.SignInResponse{AccessToken: token.AccessToken}, nil
}

func (as *AuthService) IssueToken(user *domain.User) (*response.AccessTokenResponse, error) {
	accessToken, err := as.signer.Issue(user.UUID.String(), user.Email)

	if err != nil {
		return nil, err
	}

	return &response.AccessTokenResponse{AccessToken: accessToken}, nil
}
