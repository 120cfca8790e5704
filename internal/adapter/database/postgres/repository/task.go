package repository

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	database "taskapp/internal/adapter/database/postgres"
	domain "taskapp/internal/core/domain"
	port "taskapp/internal/core/port"
)

const taskColumns = "id, uuid, title, description, status, user_id, created_at, updated_at, deleted_at"

type TaskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) port.TaskRepository {
	return &TaskRepository{db: db}
}

func (tr *TaskRepository) scanTask(row pgx.Row) (domain.Task, error) {
	var data domain.Task

	err := row.Scan(
		&data.ID,
		&data.UUID,
		&data.Title,
		&data.Description,
		&data.Status,
		&data.UserId,
		&data.CreatedAt,
		&data.UpdatedAt,
		&data.DeletedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	if err != nil {
		return domain.Task{}, err
	}

	return data, nil
}

func (tr *TaskRepository) GetFiltered(ctx context.Context, userId int, filter port.TaskFilter) ([]domain.Task, int, error) {
	base := tr.db.QueryBuilder.Select(taskColumns).
		From("tasks").
		Where(sq.Eq{"user_id": userId}).
		Where("deleted_at IS NULL")

	countBase := tr.db.QueryBuilder.Select("COUNT(*)").
		From("tasks").
		Where(sq.Eq{"user_id": userId}).
		Where("deleted_at IS NULL")

	if filter.Status != "" {
		status, err := domain.ParseTaskStatus(filter.Status)

		if err != nil {
			return nil, 0, err
		}

		base = base.Where(sq.Eq{"status": status})
		countBase = countBase.Where(sq.Eq{"status": status})
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		search := sq.Or{
			sq.Like{"LOWER(title)": pattern},
			sq.Like{"LOWER(description)": pattern},
		}

		base = base.Where(search)
		countBase = countBase.Where(search)
	}

	stmt, args, err := countBase.ToSql()

	if err != nil {
		return nil, 0, err
	}

	var total int

	if err := tr.db.QueryRow(ctx, stmt, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := base.
		OrderBy("created_at DESC, id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64((filter.Page - 1) * filter.Limit))

	stmt, args, err = query.ToSql()

	if err != nil {
		return nil, 0, err
	}

	rows, err := tr.db.Query(ctx, stmt, args...)

	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var tasks []domain.Task

	for rows.Next() {
		task, err := tr.scanTask(rows)

		if err != nil {
			return nil, 0, err
		}

		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (tr *TaskRepository) GetByUUID(ctx context.Context, uid string) (domain.Task, error) {
	query := tr.db.QueryBuilder.Select(taskColumns).
		From("tasks").
		Where(sq.Eq{"uuid": uid}).
		Where("deleted_at IS NULL").
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	data, err := tr.scanTask(tr.db.QueryRow(ctx, stmt, args...))

	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.Error("Error getting task by uuid", "error", err)
	}

	return data, err
}

func (tr *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	query := tr.db.QueryBuilder.Insert("tasks").
		Columns("uuid", "title", "description", "status", "user_id", "created_at", "updated_at").
		Values(task.UUID.String(), task.Title, task.Description, task.Status, task.UserId, task.CreatedAt, task.UpdatedAt).
		Suffix("RETURNING " + taskColumns)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	saved, err := tr.scanTask(tr.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		slog.Error("Error creating task", "error", err)
		return domain.Task{}, err
	}

	return saved, nil
}

func (tr *TaskRepository) UpdateByUUID(ctx context.Context, task domain.Task) (domain.Task, error) {
	query := tr.db.QueryBuilder.Update("tasks").
		Set("title", task.Title).
		Set("description", task.Description).
		Set("status", task.Status).
		Set("updated_at", task.UpdatedAt).
		Where(sq.Eq{"uuid": task.UUID.String()}).
		Where(sq.Eq{"user_id": task.UserId}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + taskColumns)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	saved, err := tr.scanTask(tr.db.QueryRow(ctx, stmt, args...))

	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.Error("Error updating task", "error", err)
	}

	return saved, err
}

func (tr *TaskRepository) DeleteByUUID(ctx context.Context, uid string, userId int) error {
	query := tr.db.QueryBuilder.Update("tasks").
		Set("deleted_at", time.Now()).
		Where(sq.Eq{"uuid": uid}).
		Where(sq.Eq{"user_id": userId}).
		Where("deleted_at IS NULL")

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	result, err := tr.db.Exec(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error deleting task", "error", err)
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}
