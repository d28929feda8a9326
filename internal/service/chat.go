package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/iudanet/chatstore/internal/storage"
)

// Storage combines the persistence interfaces the chat service needs
type Storage interface {
	storage.UserStorage
	storage.RoomStorage
	storage.MessageStorage
}

// Chat implements the chat application's business rules over the
// persistence layer: registration, membership and message posting with
// monotonically growing room-scoped message numbers.
type Chat struct {
	store  Storage
	logger *slog.Logger

	// сериализует назначение номера сообщения в Post: чтение последнего
	// номера и вставка не должны перемежаться
	postMu sync.Mutex
}

// NewChat creates a chat service over the given storage
func NewChat(store Storage, logger *slog.Logger) *Chat {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chat{
		store:  store,
		logger: logger,
	}
}

// requireAliveUser distinguishes an unknown login
// (storage.ErrUserNotFound) from a soft-deleted one (ErrUserDeleted)
func (c *Chat) requireAliveUser(ctx context.Context, login string) error {
	user, err := c.store.GetUser(ctx, login)
	if err != nil {
		if !errors.Is(err, storage.ErrUserNotFound) {
			c.logger.Error("user check failed", "login", login, "error", err)
		}
		return err
	}
	if !user.Alive() {
		return ErrUserDeleted
	}
	return nil
}
