package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"taskapp/internal/adapter/database/sqlite"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	tel "taskapp/internal/core/telemetry"
)

type TaskRepository struct {
	db        *sqlite.DB
	scanner   *sqlite.Scanner
	telemetry port.Telemetry
}

func NewTaskRepository(db *sqlite.DB, telemetry port.Telemetry) port.TaskRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TaskRepository{
		db:        db,
		scanner:   sqlite.NewScanner(),
		telemetry: telemetry,
	}
}

func (tr *TaskRepository) GetFiltered(ctx context.Context, userId int, filter port.TaskFilter) ([]domain.Task, int, error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "GetFiltered", "task", map[string]interface{}{
		"db.system":        "sqlite",
		"db.table":         "tasks",
		"user.id":          userId,
		"filter.status":    filter.Status,
		"pagination.page":  filter.Page,
		"pagination.limit": filter.Limit,
	})
	defer span.End()

	startTime := time.Now()

	base := tr.db.QueryBuilder.Select("*").
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
			span.SetStatus("error", err.Error())
			span.RecordError(err)
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
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return nil, 0, err
	}

	var total int

	if err := tr.db.QueryRowContext(ctx, stmt, args...).Scan(&total); err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		tr.telemetry.RecordRepositoryOperation(ctx, "GetFiltered", "task", time.Since(startTime), err)
		return nil, 0, err
	}

	query := base.
		OrderBy("created_at DESC, id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64((filter.Page - 1) * filter.Limit))

	stmt, args, err = query.ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return nil, 0, err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "GetFiltered", "task", stmt, args)

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		tr.telemetry.RecordRepositoryOperation(ctx, "GetFiltered", "task", time.Since(startTime), err)
		return nil, 0, err
	}

	defer rows.Close()

	var tasks []domain.Task

	if err := tr.scanner.ScanRowsToSlice(rows, &tasks); err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		tr.telemetry.RecordRepositoryOperation(ctx, "GetFiltered", "task", time.Since(startTime), err)
		return nil, 0, err
	}

	tr.telemetry.RecordRepositoryOperation(ctx, "GetFiltered", "task", time.Since(startTime), nil)

	return tasks, total, nil
}

func (tr *TaskRepository) GetByUUID(ctx context.Context, uid string) (domain.Task, error) {
	query := tr.db.QueryBuilder.Select("*").
		From("tasks").
		Where(sq.Eq{"uuid": uid}).
		Where("deleted_at IS NULL").
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	var data domain.Task

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return domain.Task{}, err
	}

	defer rows.Close()

	err = tr.scanner.ScanRowToStruct(rows, &data)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	if err != nil {
		slog.Error("Error getting task by uuid", "error", err)
		return domain.Task{}, err
	}

	return data, nil
}

func (tr *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	uid := task.UUID.String()

	// Use transaction to ensure same connection
	tx, err := tr.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("Error starting transaction", "error", err)
		return domain.Task{}, err
	}
	defer tx.Rollback()

	query := tr.db.QueryBuilder.Insert("tasks").
		Columns("uuid", "title", "description", "status", "user_id", "created_at", "updated_at").
		Values(uid, task.Title, task.Description, task.Status, task.UserId, task.CreatedAt, task.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		slog.Error("Error creating task", "error", err)
		return domain.Task{}, err
	}

	_, err = tx.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error creating task", "error", err)
		return domain.Task{}, err
	}

	saved, err := tr.getByUUIDTx(ctx, tx, uid)

	if err != nil {
		return domain.Task{}, err
	}

	return saved, tx.Commit()
}

func (tr *TaskRepository) UpdateByUUID(ctx context.Context, task domain.Task) (domain.Task, error) {
	tx, err := tr.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("Error starting transaction", "error", err)
		return domain.Task{}, err
	}
	defer tx.Rollback()

	query := tr.db.QueryBuilder.Update("tasks").
		Set("title", task.Title).
		Set("description", task.Description).
		Set("status", task.Status).
		Set("updated_at", task.UpdatedAt).
		Where(sq.Eq{"uuid": task.UUID.String()}).
		Where(sq.Eq{"user_id": task.UserId}).
		Where("deleted_at IS NULL")

	stmt, args, err := query.ToSql()

	if err != nil {
		slog.Error("Error updating task", "error", err)
		return domain.Task{}, err
	}

	result, err := tx.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error updating task", "error", err)
		return domain.Task{}, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.Task{}, err
	}

	if rowsAffected == 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	saved, err := tr.getByUUIDTx(ctx, tx, task.UUID.String())

	if err != nil {
		return domain.Task{}, err
	}

	return saved, tx.Commit()
}

func (tr *TaskRepository) DeleteByUUID(ctx context.Context, uid string, userId int) error {
	tx, err := tr.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("Error starting transaction", "error", err)
		return err
	}
	defer tx.Rollback()

	query := tr.db.QueryBuilder.Update("tasks").
		Set("deleted_at", time.Now()).
		Where(sq.Eq{"uuid": uid}).
		Where(sq.Eq{"user_id": userId}).
		Where("deleted_at IS NULL")

	stmt, args, err := query.ToSql()

	if err != nil {
		slog.Error("Error deleting task", "error", err)
		return err
	}

	result, err := tx.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error deleting task", "error", err)
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrTaskNotFound
	}

	return tx.Commit()
}

func (tr *TaskRepository) getByUUIDTx(ctx context.Context, tx *sql.Tx, uid string) (domain.Task, error) {
	query := tr.db.QueryBuilder.Select("*").
		From("tasks").
		Where(sq.Eq{"uuid": uid}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	var data domain.Task

	rows, err := tx.QueryContext(ctx, stmt, args...)
	if err != nil {
		return domain.Task{}, err
	}
	defer rows.Close()

	err = tr.scanner.ScanRowToStruct(rows, &data)

	if err != nil {
		slog.Error("Error getting task by uuid", "error", err)
		return domain.Task{}, err
	}

	return data, nil
}
