package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"autohaus-crm/internal/domain/user"
	"autohaus-crm/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ user.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db DBPool, logger *slog.Logger) *UserRepository {
	if db == nil {
		panic("DBPool cannot be nil for UserRepository")
	}
	return &UserRepository{db: db, logger: logger.With("component", "UserRepository")}
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	if u == nil {
		return fmt.Errorf("%w: user cannot be nil", apperrors.ErrInvalidArgument)
	}

	if u.ID == 0 {
		query := `
            INSERT INTO users (username, name, role, password_hash, created_at)
            VALUES ($1, $2, $3, $4, NOW())
            RETURNING id, created_at`
		err := r.db.QueryRow(ctx, query, u.Username, u.Name, u.Role, u.PasswordHash).
			Scan(&u.ID, &u.CreatedAt)
		if err != nil {
			translatedErr := translateDBError(err, r.logger)
			if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
				return fmt.Errorf("%w: %s", user.ErrDuplicateUsername, u.Username)
			}
			r.logger.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
			return fmt.Errorf("%w: failed to insert user: %w", apperrors.ErrDatabase, err)
		}
		return nil
	}

	query := `
        UPDATE users
        SET username = $1, name = $2, role = $3, password_hash = $4
        WHERE id = $5`
	cmdTag, err := r.db.Exec(ctx, query, u.Username, u.Name, u.Role, u.PasswordHash, u.ID)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			return fmt.Errorf("%w: %s", user.ErrDuplicateUsername, u.Username)
		}
		r.logger.ErrorContext(ctx, "Failed to update user", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update user: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, userID int64) (*user.User, error) {
	query := `SELECT id, username, name, role, password_hash, created_at FROM users WHERE id = $1`
	return r.findOne(ctx, query, userID)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `SELECT id, username, name, role, password_hash, created_at FROM users WHERE username = $1`
	return r.findOne(ctx, query, username)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var u user.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Name, &u.Role, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan user", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get user: %w", apperrors.ErrDatabase, err)
	}
	return &u, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	query := `SELECT id, username, name, role, password_hash, created_at FROM users ORDER BY username ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query users", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query users: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	users := make([]*user.User, 0)
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.Role, &u.PasswordHash, &u.CreatedAt); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan user row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan user row: %w", apperrors.ErrDatabase, err)
		}
		users = append(users, &u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating user rows: %w", apperrors.ErrDatabase, err)
	}
	return users, nil
}

func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete user", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete user: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}
