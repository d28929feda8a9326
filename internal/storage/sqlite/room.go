package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/chatstore/internal/models"
	"github.com/iudanet/chatstore/internal/storage"
)

// CreateRoom inserts a new room.
// Returns storage.ErrRoomAlreadyExists if the name is taken.
func (s *Storage) CreateRoom(ctx context.Context, name string, createdAt int64) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO rooms (room, unixtime) VALUES (?, ?)`, name, createdAt)
	if err != nil {
		// Проверяем на duplicate room
		if strings.Contains(err.Error(), "UNIQUE constraint failed: rooms.room") {
			return storage.ErrRoomAlreadyExists
		}
		return fmt.Errorf("failed to insert room: %w", err)
	}

	return nil
}

// ChangeRoomName renames a room; membership and message rows follow the
// room to its new name within the same transaction.
// Returns storage.ErrRoomAlreadyExists if the new name is taken and
// storage.ErrRoomNotFound if the old name doesn't exist. On error both
// rooms keep their original names.
func (s *Storage) ChangeRoomName(ctx context.Context, oldName, newName string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Явная проверка коллизии вместо отлова ошибки уникальности
	var taken int
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM rooms WHERE room = ?)`, newName).Scan(&taken); err != nil {
		return fmt.Errorf("failed to check new room name: %w", err)
	}
	if intToBool(taken) {
		return storage.ErrRoomAlreadyExists
	}

	result, err := tx.ExecContext(ctx, `UPDATE rooms SET room = ? WHERE room = ?`, newName, oldName)
	if err != nil {
		return fmt.Errorf("failed to rename room: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrRoomNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE user_rooms SET room = ? WHERE room = ?`, newName, oldName); err != nil {
		return fmt.Errorf("failed to rename room memberships: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE messages SET room = ? WHERE room = ?`, newName, oldName); err != nil {
		return fmt.Errorf("failed to rename room messages: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteRoom removes the room with all its messages and membership rows as
// one transaction, then permanently removes soft-deleted users that lost
// their last membership. Unknown room is not an error.
func (s *Storage) DeleteRoom(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Порядок: сообщения -> членства -> сама комната -> чистка сирот
	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE room = ?`, name); err != nil {
		return fmt.Errorf("failed to delete room messages: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_rooms WHERE room = ?`, name); err != nil {
		return fmt.Errorf("failed to delete room memberships: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE room = ?`, name); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	if err := deleteOrphanedUsers(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// IsRoom reports whether a room with this name exists
func (s *Storage) IsRoom(ctx context.Context, name string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS(SELECT 1 FROM rooms WHERE room = ?)`, name)
}

// AddUserToRoom inserts a membership row.
// Idempotent: a duplicate pair keeps a single row. The subquery yields no
// rows for an unknown room, so the insert silently does nothing instead of
// creating an orphaned reference.
func (s *Storage) AddUserToRoom(ctx context.Context, login, room string) error {
	query := `
		INSERT OR IGNORE INTO user_rooms (user_login, room)
		SELECT ?, room FROM rooms WHERE room = ?
	`

	if _, err := s.db.ExecContext(ctx, query, login, room); err != nil {
		return fmt.Errorf("failed to add user to room: %w", err)
	}

	return nil
}

// GetRoomActiveUsers returns full records of the room's non-deleted
// members, in user creation order.
func (s *Storage) GetRoomActiveUsers(ctx context.Context, room string) ([]*models.User, error) {
	return s.getUsers(ctx, `
		SELECT u.login, u.name, u.password_hash, u.role, u.is_deleted, u.unixtime
		FROM users u
		JOIN user_rooms ur ON ur.user_login = u.login
		WHERE ur.room = ? AND u.is_deleted = 0
		ORDER BY u.rowid
	`, room)
}

// DeleteUserFromRoom removes the single membership row. The user's
// messages in the room and the user record itself stay untouched.
// Unknown pair is not an error.
func (s *Storage) DeleteUserFromRoom(ctx context.Context, login, room string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM user_rooms WHERE user_login = ? AND room = ?`, login, room)
	if err != nil {
		return fmt.Errorf("failed to delete user from room: %w", err)
	}

	return nil
}

// GetRooms returns all room names in creation order
func (s *Storage) GetRooms(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT room FROM rooms ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	var rooms []string
	for rows.Next() {
		var room string
		if err := rows.Scan(&room); err != nil {
			return nil, fmt.Errorf("failed to scan room name: %w", err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return rooms, nil
}

// GetRoomsWithMembers returns room name -> member logins for every room
// with at least one membership row. Rooms with zero members are absent
// from the map.
func (s *Storage) GetRoomsWithMembers(ctx context.Context) (map[string][]string, error) {
	query := `SELECT room, user_login FROM user_rooms ORDER BY room, user_login`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query room members: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	members := make(map[string][]string)
	for rows.Next() {
		var room, login string
		if err := rows.Scan(&room, &login); err != nil {
			return nil, fmt.Errorf("failed to scan room member: %w", err)
		}
		members[room] = append(members[room], login)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}
