package service

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/chatstore/internal/models"
)

// DefaultHistoryPageSize ограничивает размер страницы истории по умолчанию
const DefaultHistoryPageSize = 50

// Post stores a message from an alive room member. The room-scoped
// message number is assigned here as last+1; the read and the insert are
// serialized by the post mutex so two writers never pick the same number.
func (c *Chat) Post(ctx context.Context, login, room, text string) (*models.Message, error) {
	if text == "" {
		return nil, fmt.Errorf("message text cannot be empty")
	}

	if err := c.requireAliveUser(ctx, login); err != nil {
		return nil, err
	}

	rooms, err := c.store.GetUserRooms(ctx, login)
	if err != nil {
		c.logger.Error("post: membership check failed", "login", login, "error", err)
		return nil, err
	}
	member := false
	for _, r := range rooms {
		if r == room {
			member = true
			break
		}
	}
	if !member {
		return nil, ErrNotRoomMember
	}

	c.postMu.Lock()
	defer c.postMu.Unlock()

	last, err := c.store.LastRoomSeq(ctx, room)
	if err != nil {
		c.logger.Error("post: last seq lookup failed", "room", room, "error", err)
		return nil, err
	}

	msg := &models.Message{
		Text:      text,
		CreatedAt: time.Now().UnixNano(),
		UserLogin: login,
		Room:      room,
		RoomSeq:   last + 1,
	}

	if err := c.store.InsertMessage(ctx, msg); err != nil {
		c.logger.Error("post: insert failed", "login", login, "room", room, "error", err)
		return nil, err
	}

	return msg, nil
}

// History returns a newest-first page of the room's messages.
// before is the room-scoped number to start from, inclusive; pass a
// negative value to start from the latest message. limit caps the page
// size, DefaultHistoryPageSize when non-positive. An empty or unknown
// room yields an empty page.
func (c *Chat) History(ctx context.Context, room string, before int64, limit int) ([]*models.Message, error) {
	if limit <= 0 {
		limit = DefaultHistoryPageSize
	}

	if before < 0 {
		last, err := c.store.LastRoomSeq(ctx, room)
		if err != nil {
			c.logger.Error("history: last seq lookup failed", "room", room, "error", err)
			return nil, err
		}
		if last < 0 {
			return nil, nil
		}
		before = last
	}

	end := before - int64(limit) + 1
	if end < 0 {
		end = 0
	}

	messages, err := c.store.GetRangeMessages(ctx, room, before, end)
	if err != nil {
		c.logger.Error("history: range query failed", "room", room, "error", err)
		return nil, err
	}

	return messages, nil
}
