package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
)

type TaskService struct {
	repo port.TaskRepository
}

func NewTaskService(repo port.TaskRepository) *TaskService {
	return &TaskService{repo}
}

func (ts *TaskService) GetTasks(ctx context.Context, userId int, filter port.TaskFilter) (*response.PaginatedResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}

	if filter.Limit <= 0 {
		filter.Limit = 10
	}

	if filter.Status != "" {
		if _, err := domain.ParseTaskStatus(filter.Status); err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrBadRequest, err.Error())
		}
	}

	tasks, total, err := ts.repo.GetFiltered(ctx, userId, filter)

	if err != nil {
		return nil, err
	}

	items := make([]response.TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		items = append(items, toTaskResponse(task))
	}

	return &response.PaginatedResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (ts *TaskService) GetTaskByUUID(ctx context.Context, userId int, uid string) (domain.Task, error) {
	task, err := ts.repo.GetByUUID(ctx, uid)

	if err != nil {
		return domain.Task{}, err
	}

	// Ownership failures look like missing rows so tenants cannot probe
	// each other's task ids.
	if !task.BelongsToUser(userId) {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	return task, nil
}

func (ts *TaskService) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	task.UUID = uuid.New()
	task.Status = int(domain.TaskStatusOpen)
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()

	return ts.repo.Create(ctx, task)
}

func (ts *TaskService) UpdateStatus(ctx context.Context, userId int, uid string, status string) (domain.Task, error) {
	parsed, err := domain.ParseTaskStatus(status)

	if err != nil {
		return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrBadRequest, err.Error())
	}

	task, err := ts.GetTaskByUUID(ctx, userId, uid)

	if err != nil {
		return domain.Task{}, err
	}

	task.Status = parsed
	task.UpdatedAt = time.Now()

	return ts.repo.UpdateByUUID(ctx, task)
}

func (ts *TaskService) DeleteByUUID(ctx context.Context, userId int, uid string) error {
	if _, err := ts.GetTaskByUUID(ctx, userId, uid); err != nil {
		return err
	}

	return ts.repo.DeleteByUUID(ctx, uid, userId)
}

func toTaskResponse(task domain.Task) response.TaskResponse {
	return response.TaskResponse{
		UUID:        task.UUID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.StatusOrFallback(),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
