package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TaskStatus int

const (
	TaskStatusOpen TaskStatus = iota
	TaskStatusInProgress
	TaskStatusDone
)

type Task struct {
	ID          int
	UUID        uuid.UUID
	Title       string `validate:"required,min=3,max=255"`
	Description string `validate:"max=1000"`
	Status      int    `validate:"oneof=0 1 2"`
	UserId      int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

func (t *Task) IsDeleted() bool {
	return t.DeletedAt != nil
}

func (t *Task) BelongsToUser(userID int) bool {
	return t.UserId == userID
}

func (t *Task) StatusOrFallback(fallback ...string) string {
	if t.Status < int(TaskStatusOpen) || t.Status > int(TaskStatusDone) {
		if len(fallback) > 0 && fallback[0] != "" {
			return fallback[0]
		}
		return "unknown"
	}

	return TaskStatus(t.Status).String()
}

func (t TaskStatus) String() string {
	return []string{"open", "in_progress", "done"}[t]
}

func ParseTaskStatus(status string) (int, error) {
	switch status {
	case "open", "":
		return int(TaskStatusOpen), nil
	case "in_progress":
		return int(TaskStatusInProgress), nil
	case "done":
		return int(TaskStatusDone), nil
	default:
		return -1, fmt.Errorf("invalid status: %s", status)
	}
}
