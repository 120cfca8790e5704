package repository

import (
	"context"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	database "taskapp/internal/adapter/database/postgres"
	domain "taskapp/internal/core/domain"
	port "taskapp/internal/core/port"
)

const userColumns = "id, uuid, email, encrypted_password, two_factor_secret, is_two_factor_enabled, is_oauth_user, role, created_at, updated_at, deleted_at"

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) scanUser(row pgx.Row) (domain.User, error) {
	var data domain.User

	err := row.Scan(
		&data.ID,
		&data.UUID,
		&data.Email,
		&data.EncryptedPassword,
		&data.TwoFactorSecret,
		&data.IsTwoFactorEnabled,
		&data.IsOAuthUser,
		&data.Role,
		&data.CreatedAt,
		&data.UpdatedAt,
		&data.DeletedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}

	if err != nil {
		return domain.User{}, err
	}

	return data, nil
}

func (ur *UserRepository) GetByUUID(ctx context.Context, uid string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select(userColumns).
		From("users").
		Where(sq.Eq{"uuid": uid}).
		Where("deleted_at IS NULL").
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	data, err := ur.scanUser(ur.db.QueryRow(ctx, stmt, args...))

	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.Error("Error getting user by uuid", "error", err)
	}

	return data, err
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select(userColumns).
		From("users").
		Where(sq.Eq{"email": email}).
		Where("deleted_at IS NULL").
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	data, err := ur.scanUser(ur.db.QueryRow(ctx, stmt, args...))

	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.Error("Error getting user by email", "error", err)
	}

	return data, err
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

	if err := ur.db.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	query := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "email", "encrypted_password", "two_factor_secret", "is_two_factor_enabled", "is_oauth_user", "role", "created_at", "updated_at").
		Values(user.UUID.String(), user.Email, user.EncryptedPassword, user.TwoFactorSecret, user.IsTwoFactorEnabled, user.IsOAuthUser, string(user.Role), user.CreatedAt, user.UpdatedAt).
		Suffix("RETURNING " + userColumns)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	saved, err := ur.scanUser(ur.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	return saved, nil
}

func (ur *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	query := ur.db.QueryBuilder.Update("users").
		Set("email", user.Email).
		Set("encrypted_password", user.EncryptedPassword).
		Set("two_factor_secret", user.TwoFactorSecret).
		Set("is_two_factor_enabled", user.IsTwoFactorEnabled).
		Set("role", string(user.Role)).
		Set("updated_at", user.UpdatedAt).
		Where(sq.Eq{"uuid": user.UUID.String()}).
		Suffix("RETURNING " + userColumns)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	saved, err := ur.scanUser(ur.db.QueryRow(ctx, stmt, args...))

	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.Error("Error updating user", "error", err)
	}

	return saved, err
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

	if err := ur.db.QueryRow(ctx, stmt, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := ur.db.QueryBuilder.Select(userColumns).
		From("users").
		Where("deleted_at IS NULL").
		OrderBy("created_at DESC, id DESC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit))

	stmt, args, err = query.ToSql()

	if err != nil {
		return nil, 0, err
	}

	rows, err := ur.db.Query(ctx, stmt, args...)

	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var users []domain.User

	for rows.Next() {
		user, err := ur.scanUser(rows)

		if err != nil {
			return nil, 0, err
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
