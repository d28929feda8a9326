package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iudanet/chatstore/internal/models"
)

// InsertMessage appends a message row. RoomSeq comes from the caller; the
// store enforces neither uniqueness nor monotonicity of the value.
func (s *Storage) InsertMessage(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (message, unixtime, user_login, room, id_message_in_room)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		msg.Text,
		msg.CreatedAt,
		msg.UserLogin,
		msg.Room,
		msg.RoomSeq,
	)

	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	return nil
}

// GetRangeMessages returns the room's messages with RoomSeq in the
// inclusive range between begin and end. Ordered descending by RoomSeq
// when begin >= end (newest-first page from begin down to end), ascending
// otherwise. Empty slice, never an error, for an empty or unknown room.
func (s *Storage) GetRangeMessages(ctx context.Context, room string, begin, end int64) ([]*models.Message, error) {
	lo, hi := begin, end
	order := "ASC"
	if begin >= end {
		lo, hi = end, begin
		order = "DESC"
	}

	// Направление сортировки — константа, в запрос не попадает ничего
	// от вызывающей стороны кроме параметров
	query := `
		SELECT message, unixtime, user_login, room, id_message_in_room
		FROM messages
		WHERE room = ? AND id_message_in_room BETWEEN ? AND ?
		ORDER BY id_message_in_room ` + order

	rows, err := s.db.QueryContext(ctx, query, room, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	return scanMessages(rows)
}

// CountRoomMessages returns the number of stored messages for the room.
// Zero for an unknown or empty room.
func (s *Storage) CountRoomMessages(ctx context.Context, room string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE room = ?`, room).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count room messages: %w", err)
	}

	return count, nil
}

// LastRoomSeq returns the highest RoomSeq stored for the room, or -1 when
// the room has no messages.
func (s *Storage) LastRoomSeq(ctx context.Context, room string) (int64, error) {
	var last int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id_message_in_room), -1) FROM messages WHERE room = ?`, room).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("failed to get last room seq: %w", err)
	}

	return last, nil
}

// scanMessages is a helper function to scan multiple messages from rows
func scanMessages(rows *sql.Rows) ([]*models.Message, error) {
	var messages []*models.Message

	for rows.Next() {
		msg := &models.Message{}

		err := rows.Scan(
			&msg.Text,
			&msg.CreatedAt,
			&msg.UserLogin,
			&msg.Room,
			&msg.RoomSeq,
		)

		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return messages, nil
}
