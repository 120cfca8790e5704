package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"taskapp/internal/adapter/database/sqlite"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	tel "taskapp/internal/core/telemetry"
)

type UserRepository struct {
	db        *sqlite.DB
	scanner   *sqlite.Scanner
	telemetry port.Telemetry
}

func NewUserRepository(db *sqlite.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{
		db:        db,
		scanner:   sqlite.NewScanner(),
		telemetry: telemetry,
	}
}

func (ur *UserRepository) GetByUUID(ctx context.Context, uid string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select("*").
		From("users").
		Where(sq.Eq{"uuid": uid}).
		Where("deleted_at IS NULL").
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var data domain.User

	rows, err := ur.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return domain.User{}, err
	}

	defer rows.Close()

	err = ur.scanner.ScanRowToStruct(rows, &data)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}

	if err != nil {
		slog.Error("Error getting user by uuid", "error", err)
		return domain.User{}, err
	}

	return data, nil
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select("*").
		From("users").
		Where(sq.Eq{"email": email}).
		Where("deleted_at IS NULL").
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var data domain.User

	rows, err := ur.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return domain.User{}, err
	}

	defer rows.Close()

	err = ur.scanner.ScanRowToStruct(rows, &data)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}

	if err != nil {
		slog.Error("Error getting user by email", "error", err)
		return domain.User{}, err
	}

	return data, nil
}

func (ur *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := ur.db.QueryBuilder.Select("COUNT(*)").
		From("users").
		Where(sq.Eq{"email": email}).
		Where("deleted_at IS NULL")

	stmt, args, err := query.ToSql()

	if err != nil {
		return false, err
	}

	var count int

	if err := ur.db.QueryRowContext(ctx, stmt, args...).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func (ur *UserRepository) getByUUIDTx(ctx context.Context, tx *sql.Tx, uid string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select("*").
		From("users").
		Where(sq.Eq{"uuid": uid}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var data domain.User

	rows, err := tx.QueryContext(ctx, stmt, args...)
	if err != nil {
		return domain.User{}, err
	}
	defer rows.Close()

	err = ur.scanner.ScanRowToStruct(rows, &data)

	if err != nil {
		slog.Error("Error getting user by uuid", "error", err)
		return domain.User{}, err
	}

	return data, nil
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	uid := user.UUID.String()

	// Use transaction to ensure same connection
	tx, err := ur.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("Error starting transaction", "error", err)
		return domain.User{}, err
	}
	defer tx.Rollback()

	query := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "email", "encrypted_password", "two_factor_secret", "is_two_factor_enabled", "is_oauth_user", "role", "created_at", "updated_at").
		Values(uid, user.Email, user.EncryptedPassword, user.TwoFactorSecret, user.IsTwoFactorEnabled, user.IsOAuthUser, string(user.Role), user.CreatedAt, user.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	_, err = tx.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	saved, err := ur.getByUUIDTx(ctx, tx, uid)

	if err != nil {
		return domain.User{}, err
	}

	return saved, tx.Commit()
}

func (ur *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	tx, err := ur.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("Error starting transaction", "error", err)
		return domain.User{}, err
	}
	defer tx.Rollback()

	query := ur.db.QueryBuilder.Update("users").
		Set("email", user.Email).
		Set("encrypted_password", user.EncryptedPassword).
		Set("two_factor_secret", user.TwoFactorSecret).
		Set("is_two_factor_enabled", user.IsTwoFactorEnabled).
		Set("role", string(user.Role)).
		Set("updated_at", user.UpdatedAt).
		Where(sq.Eq{"uuid": user.UUID.String()})

	stmt, args, err := query.ToSql()

	if err != nil {
		slog.Error("Error updating user", "error", err)
		return domain.User{}, err
	}

	result, err := tx.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error updating user", "error", err)
		return domain.User{}, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.User{}, err
	}

	if rowsAffected == 0 {
		return domain.User{}, domain.ErrUserNotFound
	}

	saved, err := ur.getByUUIDTx(ctx, tx, user.UUID.String())

	if err != nil {
		return domain.User{}, err
	}

	return saved, tx.Commit()
}

func (ur *UserRepository) List(ctx context.Context, page int, limit int) ([]domain.User, int, error) {
	countQuery := ur.db.QueryBuilder.Select("COUNT(*)").
		From("users").
		Where("deleted_at IS NULL")

	stmt, args, err := countQuery.ToSql()

	if err != nil {
		return nil, 0, err
	}

	var total int

	if err := ur.db.QueryRowContext(ctx, stmt, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := ur.db.QueryBuilder.Select("*").
		From("users").
		Where("deleted_at IS NULL").
		OrderBy("created_at DESC, id DESC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit))

	stmt, args, err = query.ToSql()

	if err != nil {
		return nil, 0, err
	}

	rows, err := ur.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var users []domain.User

	if err := ur.scanner.ScanRowsToSlice(rows, &users); err != nil {
		slog.Error("Error listing users", "error", err)
		return nil, 0, err
	}

	return users, total, nil
}
