package port

import (
	"context"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/response"
)

type TaskFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

type TaskRepository interface {
	GetFiltered(ctx context.Context, userId int, filter TaskFilter) ([]domain.Task, int, error)
	GetByUUID(ctx context.Context, uuid string) (domain.Task, error)
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	UpdateByUUID(ctx context.Context, task domain.Task) (domain.Task, error)
	DeleteByUUID(ctx context.Context, uuid string, userId int) error
}

type TaskService interface {
	GetTasks(ctx context.Context, userId int, filter TaskFilter) (*response.PaginatedResponse, error)
	GetTaskByUUID(ctx context.Context, userId int, uuid string) (domain.Task, error)
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	UpdateStatus(ctx context.Context, userId int, uuid string, status string) (domain.Task, error)
	DeleteByUUID(ctx context.Context, userId int, uuid string) error
}
