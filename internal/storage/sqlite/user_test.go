package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatstore/internal/models"
	"github.com/iudanet/chatstore/internal/storage"
)

func TestUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := &models.User{
		Login:        "alice",
		Name:         "Alice",
		PasswordHash: "hash123",
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UnixNano(),
	}

	require.NoError(t, s.CreateUser(ctx, user))

	retrieved, err := s.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.Login, retrieved.Login)
	assert.Equal(t, user.Name, retrieved.Name)
	assert.Equal(t, user.PasswordHash, retrieved.PasswordHash)
	assert.Equal(t, user.Role, retrieved.Role)
	assert.Equal(t, user.CreatedAt, retrieved.CreatedAt)
	assert.False(t, retrieved.IsDeleted)
}

func TestUserStorage_CreateUser_DuplicateLogin(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	first := &models.User{
		Login:        "alice",
		Name:         "Alice",
		PasswordHash: "hash1",
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UnixNano(),
	}
	require.NoError(t, s.CreateUser(ctx, first))

	// Повторная вставка с тем же логином: успех без перезаписи полей
	duplicate := &models.User{
		Login:        "alice",
		Name:         "Another Alice",
		PasswordHash: "hash2",
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UnixNano(),
	}
	require.NoError(t, s.CreateUser(ctx, duplicate))

	users, err := s.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "hash1", users[0].PasswordHash)
	assert.Equal(t, models.RoleUser, users[0].Role)
}

func TestUserStorage_IsUser_IsAliveUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	login := createTestUser(t, ctx, s)
	createTestRoom(t, ctx, s, "general")
	require.NoError(t, s.AddUserToRoom(ctx, login, "general"))

	tests := []struct {
		name      string
		login     string
		softDel   bool
		wantIs    bool
		wantAlive bool
	}{
		{name: "existing user", login: login, wantIs: true, wantAlive: true},
		{name: "unknown user", login: "nobody", wantIs: false, wantAlive: false},
		{name: "soft-deleted user", login: login, softDel: true, wantIs: true, wantAlive: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.softDel {
				require.NoError(t, s.DeleteUser(ctx, tt.login))
			}

			is, err := s.IsUser(ctx, tt.login)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIs, is)

			alive, err := s.IsAliveUser(ctx, tt.login)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAlive, alive)
		})
	}
}

func TestUserStorage_DeleteUser_WithoutRooms(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	login := createTestUser(t, ctx, s)

	users, err := s.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	// Без членства в комнатах мягкое удаление сразу переходит в жесткое
	require.NoError(t, s.DeleteUser(ctx, login))

	is, err := s.IsUser(ctx, login)
	require.NoError(t, err)
	assert.False(t, is)

	users, err = s.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserStorage_DeleteUser_WithRooms(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	login := createTestUser(t, ctx, s)
	createTestRoom(t, ctx, s, "general")
	require.NoError(t, s.AddUserToRoom(ctx, login, "general"))

	require.NoError(t, s.DeleteUser(ctx, login))

	// Пользователь остается в базе, но помечен удаленным
	all, err := s.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsDeleted)

	active, err := s.GetActiveUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	deleted, err := s.GetDeletedUsers(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, login, deleted[0].Login)
}

func TestUserStorage_DeleteUser_Unknown(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	// Удаление несуществующего пользователя не ошибка
	assert.NoError(t, s.DeleteUser(ctx, "nobody"))
}

func TestUserStorage_ChangeUserName(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	login := createTestUser(t, ctx, s)

	require.NoError(t, s.ChangeUserName(ctx, login, "New Name"))

	user, err := s.GetUser(ctx, login)
	require.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
}

func TestUserStorage_ChangeUserName_NotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.ChangeUserName(ctx, "nobody", "New Name")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUserStorage_GetUser_NotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user, err := s.GetUser(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
	assert.Nil(t, user)
}

func TestUserStorage_Listings(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	createTestRoom(t, ctx, s, "general")

	require.NoError(t, s.CreateUser(ctx, testUser("user1")))
	require.NoError(t, s.CreateUser(ctx, testUser("user2")))
	require.NoError(t, s.CreateUser(ctx, testUser("user3")))
	require.NoError(t, s.AddUserToRoom(ctx, "user2", "general"))
	require.NoError(t, s.DeleteUser(ctx, "user2"))

	all, err := s.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Порядок вставки сохраняется
	assert.Equal(t, "user1", all[0].Login)
	assert.Equal(t, "user2", all[1].Login)
	assert.Equal(t, "user3", all[2].Login)

	active, err := s.GetActiveUsers(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "user1", active[0].Login)
	assert.Equal(t, "user3", active[1].Login)

	deleted, err := s.GetDeletedUsers(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, "user2", deleted[0].Login)
}

func TestUserStorage_GetUserRooms(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	login := createTestUser(t, ctx, s)
	createTestRoom(t, ctx, s, "general")
	createTestRoom(t, ctx, s, "random")

	require.NoError(t, s.AddUserToRoom(ctx, login, "general"))
	require.NoError(t, s.AddUserToRoom(ctx, login, "random"))

	rooms, err := s.GetUserRooms(ctx, login)
	require.NoError(t, err)
	assert.Equal(t, []string{"general", "random"}, rooms)

	// Неизвестный пользователь: пусто, не ошибка
	rooms, err = s.GetUserRooms(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, rooms)
}
