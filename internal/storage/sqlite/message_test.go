package sqlite

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatstore/internal/models"
)

func TestMessageStorage_InsertMessage(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	login := createTestUser(t, ctx, s)
	createTestRoom(t, ctx, s, "general")

	count, err := s.CountRoomMessages(ctx, "general")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	sent := time.Now().UnixNano()
	msg := &models.Message{
		Text:      "Hello",
		CreatedAt: sent,
		UserLogin: login,
		Room:      "general",
		RoomSeq:   0,
	}
	require.NoError(t, s.InsertMessage(ctx, msg))

	count, err = s.CountRoomMessages(ctx, "general")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Записанное читается без искажений
	messages, err := s.GetRangeMessages(ctx, "general", 0, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Hello", messages[0].Text)
	assert.Equal(t, sent, messages[0].CreatedAt)
	assert.Equal(t, login, messages[0].UserLogin)
	assert.Equal(t, "general", messages[0].Room)
	assert.Equal(t, int64(0), messages[0].RoomSeq)
}

func TestMessageStorage_GetRangeMessages_SingleID(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	login := createTestUser(t, ctx, s)
	createTestRoom(t, ctx, s, "general")
	require.NoError(t, s.InsertMessage(ctx, testMessage(login, "general", 1000)))

	// Номер вне диапазона существующих
	messages, err := s.GetRangeMessages(ctx, "general", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, messages)

	messages, err = s.GetRangeMessages(ctx, "general", 1000, 1000)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, int64(1000), messages[0].RoomSeq)
}

func TestMessageStorage_GetRangeMessages_Pagination(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	login := createTestUser(t, ctx, s)
	createTestRoom(t, ctx, s, "general")

	for i := int64(0); i < 60; i++ {
		msg := &models.Message{
			Text:      strconv.FormatInt(i, 10),
			CreatedAt: time.Now().UnixNano(),
			UserLogin: login,
			Room:      "general",
			RoomSeq:   i,
		}
		require.NoError(t, s.InsertMessage(ctx, msg))
	}

	count, err := s.CountRoomMessages(ctx, "general")
	require.NoError(t, err)
	assert.Equal(t, 60, count)

	// Первая страница: 59..50, от новых к старым
	firstPage, err := s.GetRangeMessages(ctx, "general", 59, 50)
	require.NoError(t, err)
	require.Len(t, firstPage, 10)
	for i, msg := range firstPage {
		assert.Equal(t, int64(59-i), msg.RoomSeq)
	}

	secondPage, err := s.GetRangeMessages(ctx, "general", 49, 40)
	require.NoError(t, err)
	require.Len(t, secondPage, 10)
	assert.Equal(t, int64(49), secondPage[0].RoomSeq)
	assert.Equal(t, int64(40), secondPage[9].RoomSeq)
}

func TestMessageStorage_GetRangeMessages_Ascending(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	login := createTestUser(t, ctx, s)
	createTestRoom(t, ctx, s, "general")

	for i := int64(0); i < 5; i++ {
		require.NoError(t, s.InsertMessage(ctx, testMessage(login, "general", i)))
	}

	// begin < end: хронологический порядок
	messages, err := s.GetRangeMessages(ctx, "general", 1, 3)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, int64(1), messages[0].RoomSeq)
	assert.Equal(t, int64(3), messages[2].RoomSeq)
}

func TestMessageStorage_GetRangeMessages_UnknownRoom(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	messages, err := s.GetRangeMessages(ctx, "ghost", 0, 100)
	require.NoError(t, err)
	assert.Empty(t, messages)

	count, err := s.CountRoomMessages(ctx, "ghost")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMessageStorage_LastRoomSeq(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	login := createTestUser(t, ctx, s)
	createTestRoom(t, ctx, s, "general")

	last, err := s.LastRoomSeq(ctx, "general")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), last)

	require.NoError(t, s.InsertMessage(ctx, testMessage(login, "general", 0)))
	require.NoError(t, s.InsertMessage(ctx, testMessage(login, "general", 7)))

	last, err = s.LastRoomSeq(ctx, "general")
	require.NoError(t, err)
	assert.Equal(t, int64(7), last)
}
