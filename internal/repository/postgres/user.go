package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maaylex/maaylex-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, email, display_name, picture, password_hash, password_salt,
			  is_admin, is_contributor, created_at, updated_at`

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Email, &user.DisplayName, &user.Picture,
		&user.PasswordHash, &user.PasswordSalt,
		&user.IsAdmin, &user.IsContributor, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, email, display_name, picture, password_hash, password_salt, is_admin, is_contributor, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + userColumns

	savedUser, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.DisplayName, user.Picture,
		user.PasswordHash, user.PasswordSalt,
		user.IsAdmin, user.IsContributor, user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		if conflictErr := mapUniqueViolation(err); errors.Is(conflictErr, model.ErrConflict) {
			return model.User{}, model.ErrConflict
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, displayName string, picture *string) error {
	const query = `UPDATE users SET display_name = $2, picture = COALESCE($3, picture), updated_at = now() WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id, displayName, picture)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	const query = `UPDATE users SET is_admin = $2, is_contributor = $3, updated_at = now() WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id, role == model.RoleAdmin, role.AtLeast(model.RoleContributor))
	if err != nil {
		return fmt.Errorf("failed to set user role: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
