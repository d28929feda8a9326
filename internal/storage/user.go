package storage

import (
	"context"

	"github.com/iudanet/chatstore/internal/models"
)

// UserStorage defines interface for chat user persistence
type UserStorage interface {
	// CreateUser inserts a new user.
	// Idempotent by login: if the login already exists the call succeeds
	// and the stored row is left untouched.
	CreateUser(ctx context.Context, user *models.User) error

	// DeleteUser soft-deletes the user (sets is_deleted).
	// A soft-deleted user with no remaining room memberships is removed
	// permanently in the same transaction. Unknown login is not an error.
	DeleteUser(ctx context.Context, login string) error

	// IsUser reports whether a user with this login exists (deleted or not)
	IsUser(ctx context.Context, login string) (bool, error)

	// IsAliveUser reports whether the user exists and is not soft-deleted
	IsAliveUser(ctx context.Context, login string) (bool, error)

	// ChangeUserName updates the display name.
	// Returns ErrUserNotFound if the login doesn't exist.
	ChangeUserName(ctx context.Context, login, name string) error

	// GetUser retrieves the full user record.
	// Returns ErrUserNotFound if the login doesn't exist.
	GetUser(ctx context.Context, login string) (*models.User, error)

	// GetAllUsers returns every user, soft-deleted included, in creation order
	GetAllUsers(ctx context.Context) ([]*models.User, error)

	// GetActiveUsers returns users with is_deleted unset, in creation order
	GetActiveUsers(ctx context.Context) ([]*models.User, error)

	// GetDeletedUsers returns soft-deleted users, in creation order
	GetDeletedUsers(ctx context.Context) ([]*models.User, error)

	// GetUserRooms returns names of rooms the user belongs to.
	// Empty slice when the user has no memberships or doesn't exist.
	GetUserRooms(ctx context.Context, login string) ([]string, error)
}
