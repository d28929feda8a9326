package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/chatstore/internal/models"
	"github.com/iudanet/chatstore/internal/storage"
)

// CreateUser inserts a new user.
// Idempotent by login: a duplicate insert succeeds and leaves the
// previously stored row untouched.
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	// INSERT OR IGNORE, а не отлов ошибки уникальности: настоящие ошибки
	// хранилища не должны маскироваться под дубликат
	query := `
		INSERT OR IGNORE INTO users (login, name, password_hash, role, is_deleted, unixtime)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.Login,
		user.Name,
		user.PasswordHash,
		user.Role,
		boolToInt(user.IsDeleted),
		user.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// DeleteUser soft-deletes the user and, within the same transaction,
// permanently removes every soft-deleted user left without memberships.
// Unknown login is not an error.
func (s *Storage) DeleteUser(ctx context.Context, login string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE users SET is_deleted = 1 WHERE login = ?`, login); err != nil {
		return fmt.Errorf("failed to mark user deleted: %w", err)
	}

	if err := deleteOrphanedUsers(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// IsUser reports whether a user with this login exists, soft-deleted or not
func (s *Storage) IsUser(ctx context.Context, login string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE login = ?)`, login)
}

// IsAliveUser reports whether the user exists and is not soft-deleted
func (s *Storage) IsAliveUser(ctx context.Context, login string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE login = ? AND is_deleted = 0)`, login)
}

// ChangeUserName updates the display name.
// Returns storage.ErrUserNotFound if the login doesn't exist.
func (s *Storage) ChangeUserName(ctx context.Context, login, name string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE users SET name = ? WHERE login = ?`, name, login)
	if err != nil {
		return fmt.Errorf("failed to change user name: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

// GetUser retrieves the full user record by login.
// Returns storage.ErrUserNotFound if the login doesn't exist.
func (s *Storage) GetUser(ctx context.Context, login string) (*models.User, error) {
	query := `
		SELECT login, name, password_hash, role, is_deleted, unixtime
		FROM users
		WHERE login = ?
	`

	user := &models.User{}
	var isDeleted int

	err := s.db.QueryRowContext(ctx, query, login).Scan(
		&user.Login,
		&user.Name,
		&user.PasswordHash,
		&user.Role,
		&isDeleted,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.IsDeleted = intToBool(isDeleted)

	return user, nil
}

// GetAllUsers returns every user, soft-deleted included, in creation order
func (s *Storage) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.getUsers(ctx, `
		SELECT login, name, password_hash, role, is_deleted, unixtime
		FROM users
		ORDER BY rowid
	`)
}

// GetActiveUsers returns users that are not soft-deleted, in creation order
func (s *Storage) GetActiveUsers(ctx context.Context) ([]*models.User, error) {
	return s.getUsers(ctx, `
		SELECT login, name, password_hash, role, is_deleted, unixtime
		FROM users
		WHERE is_deleted = 0
		ORDER BY rowid
	`)
}

// GetDeletedUsers returns soft-deleted users, in creation order
func (s *Storage) GetDeletedUsers(ctx context.Context) ([]*models.User, error) {
	return s.getUsers(ctx, `
		SELECT login, name, password_hash, role, is_deleted, unixtime
		FROM users
		WHERE is_deleted = 1
		ORDER BY rowid
	`)
}

// GetUserRooms returns names of rooms the user belongs to, in join order.
// Empty slice when the user has no memberships or doesn't exist.
func (s *Storage) GetUserRooms(ctx context.Context, login string) ([]string, error) {
	query := `SELECT room FROM user_rooms WHERE user_login = ? ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, login)
	if err != nil {
		return nil, fmt.Errorf("failed to query user rooms: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	var userRooms []string
	for rows.Next() {
		var room string
		if err := rows.Scan(&room); err != nil {
			return nil, fmt.Errorf("failed to scan room name: %w", err)
		}
		userRooms = append(userRooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return userRooms, nil
}

// exists is a helper for EXISTS(...) queries
func (s *Storage) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var found int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&found); err != nil {
		return false, fmt.Errorf("failed to run existence query: %w", err)
	}
	return intToBool(found), nil
}

// getUsers is a helper to run a user query and scan the resulting rows
func (s *Storage) getUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	return scanUsers(rows)
}

// scanUsers is a helper function to scan multiple users from rows
func scanUsers(rows *sql.Rows) ([]*models.User, error) {
	var users []*models.User

	for rows.Next() {
		user := &models.User{}
		var isDeleted int

		err := rows.Scan(
			&user.Login,
			&user.Name,
			&user.PasswordHash,
			&user.Role,
			&isDeleted,
			&user.CreatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		user.IsDeleted = intToBool(isDeleted)

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}
