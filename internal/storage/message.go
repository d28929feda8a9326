package storage

import (
	"context"

	"github.com/iudanet/chatstore/internal/models"
)

// MessageStorage defines interface for room message history persistence
type MessageStorage interface {
	// InsertMessage appends a message row. RoomSeq is supplied by the
	// caller; the store enforces neither uniqueness nor monotonicity.
	InsertMessage(ctx context.Context, msg *models.Message) error

	// GetRangeMessages returns the room's messages with RoomSeq in the
	// inclusive range between begin and end. Ordered descending by RoomSeq
	// when begin >= end (newest-first pagination), ascending otherwise.
	// Empty slice, never an error, for an empty or unknown room.
	GetRangeMessages(ctx context.Context, room string, begin, end int64) ([]*models.Message, error)

	// CountRoomMessages returns the number of stored messages for the room.
	// Zero for an unknown or empty room.
	CountRoomMessages(ctx context.Context, room string) (int, error)

	// LastRoomSeq returns the highest RoomSeq stored for the room, or -1
	// when the room has no messages.
	LastRoomSeq(ctx context.Context, room string) (int64, error)
}
