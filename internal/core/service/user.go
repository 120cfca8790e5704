package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo}
}

func (us *UserService) GetUsers(ctx context.Context, page int, limit int) (*response.PaginatedResponse, error) {
	if page <= 0 {
		page = 1
	}

	if limit <= 0 {
		limit = 10
	}

	users, total, err := us.repo.List(ctx, page, limit)

	if err != nil {
		return nil, err
	}

	items := make([]response.UserResponse, 0, len(users))

	for _, user := range users {
		items = append(items, response.UserResponse{
			UUID:               user.UUID.String(),
			Email:              user.Email,
			Role:               string(user.Role),
			IsTwoFactorEnabled: user.IsTwoFactorEnabled,
			IsOAuthUser:        user.IsOAuthUser,
			CreatedAt:          user.CreatedAt,
			UpdatedAt:          user.UpdatedAt,
		})
	}

	return &response.PaginatedResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (us *UserService) GetUserByUUID(ctx context.Context, uid string) (domain.User, error) {
	return us.repo.GetByUUID(ctx, uid)
}

func (us *UserService) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return us.repo.GetByEmail(ctx, email)
}

func (us *UserService) CreateUser(ctx context.Context, email string, password string) (domain.User, error) {
	exists, err := us.repo.ExistsByEmail(ctx, email)

	if err != nil {
		return domain.User{}, err
	}

	if exists {
		return domain.User{}, domain.ErrEmailAlreadyExists
	}

	encrypted, err := util.GenerateEncrypt(password)

	if err != nil {
		return domain.User{}, fmt.Errorf("error creating encrypted password: %w", err)
	}

	now := time.Now()

	user := domain.User{
		UUID:              uuid.New(),
		Email:             email,
		EncryptedPassword: encrypted,
		Role:              domain.Member,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	return us.repo.Create(ctx, user)
}

// CreateOAuthUser provisions an account from an external identity. No
// password is stored, which keeps password and 2FA flows closed for it.
func (us *UserService) CreateOAuthUser(ctx context.Context, email string) (domain.User, error) {
	exists, err := us.repo.ExistsByEmail(ctx, email)

	if err != nil {
		return domain.User{}, err
	}

	if exists {
		return domain.User{}, domain.ErrEmailAlreadyExists
	}

	now := time.Now()

	user := domain.User{
		UUID:        uuid.New(),
		Email:       email,
		IsOAuthUser: true,
		Role:        domain.Member,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	saved, err := us.repo.Create(ctx, user)

	if err != nil {
		slog.Error("User#CreateOAuthUser", "create", err)
		return domain.User{}, err
	}

	return saved, nil
}

func (us *UserService) UpdateUser(ctx context.Context, user domain.User) (domain.User, error) {
	user.UpdatedAt = time.Now()

	return us.repo.Update(ctx, user)
}
