package port

import (
	"context"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/response"
)

type UserRepository interface {
	GetByUUID(ctx context.Context, uuid string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	List(ctx context.Context, page int, limit int) ([]domain.User, int, error)
}

type UserService interface {
	GetUsers(ctx context.Context, page int, limit int) (*response.PaginatedResponse, error)
	GetUserByUUID(ctx context.Context, uuid string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	CreateUser(ctx context.Context, email string, password string) (domain.User, error)
	CreateOAuthUser(ctx context.Context, email string) (domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) (domain.User, error)
}
