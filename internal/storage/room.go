package storage

import (
	"context"

	"github.com/iudanet/chatstore/internal/models"
)

// RoomStorage defines interface for chat room and membership persistence
type RoomStorage interface {
	// CreateRoom inserts a new room.
	// Returns ErrRoomAlreadyExists if the name is taken.
	CreateRoom(ctx context.Context, name string, createdAt int64) error

	// ChangeRoomName renames a room. Memberships and messages follow the
	// room to its new name within the same transaction.
	// Returns ErrRoomNotFound if the old name doesn't exist and
	// ErrRoomAlreadyExists if the new name is taken; on error both rooms
	// keep their original names.
	ChangeRoomName(ctx context.Context, oldName, newName string) error

	// DeleteRoom removes the room, all its messages and all its membership
	// rows as one transaction. Soft-deleted users that lose their last
	// membership are removed permanently in the same transaction.
	// Unknown room is not an error.
	DeleteRoom(ctx context.Context, name string) error

	// IsRoom reports whether a room with this name exists
	IsRoom(ctx context.Context, name string) (bool, error)

	// AddUserToRoom inserts a membership row.
	// Idempotent: adding the same pair twice keeps a single row. Adding to
	// a room that doesn't exist is a silent no-op, not an error.
	AddUserToRoom(ctx context.Context, login, room string) error

	// GetRoomActiveUsers returns full records of the room's non-deleted
	// members, in user creation order.
	GetRoomActiveUsers(ctx context.Context, room string) ([]*models.User, error)

	// DeleteUserFromRoom removes the single membership row. The user's
	// messages in the room and the user record stay untouched.
	// Unknown pair is not an error.
	DeleteUserFromRoom(ctx context.Context, login, room string) error

	// GetRooms returns all room names in creation order
	GetRooms(ctx context.Context) ([]string, error)

	// GetRoomsWithMembers returns room name -> member logins for every room
	// with at least one membership row. Rooms with zero members are absent
	// from the map.
	GetRoomsWithMembers(ctx context.Context) (map[string][]string, error)
}
