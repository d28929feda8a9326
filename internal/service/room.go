package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/chatstore/internal/storage"
	"github.com/iudanet/chatstore/internal/validation"
)

// OpenRoom validates the name and creates the room.
// Returns storage.ErrRoomAlreadyExists when the name is taken.
func (c *Chat) OpenRoom(ctx context.Context, name string) error {
	if err := validation.ValidateRoomName(name); err != nil {
		return fmt.Errorf("invalid room name: %w", err)
	}

	if err := c.store.CreateRoom(ctx, name, time.Now().UnixNano()); err != nil {
		if !errors.Is(err, storage.ErrRoomAlreadyExists) {
			c.logger.Error("open room: create failed", "room", name, "error", err)
		}
		return err
	}

	c.logger.Info("room opened", "room", name)

	return nil
}

// RenameRoom validates the new name and renames the room.
func (c *Chat) RenameRoom(ctx context.Context, oldName, newName string) error {
	if err := validation.ValidateRoomName(newName); err != nil {
		return fmt.Errorf("invalid room name: %w", err)
	}

	if err := c.store.ChangeRoomName(ctx, oldName, newName); err != nil {
		if !errors.Is(err, storage.ErrRoomNotFound) && !errors.Is(err, storage.ErrRoomAlreadyExists) {
			c.logger.Error("rename room failed", "room", oldName, "new_room", newName, "error", err)
		}
		return err
	}

	c.logger.Info("room renamed", "room", oldName, "new_room", newName)

	return nil
}

// CloseRoom deletes the room together with its history and memberships
func (c *Chat) CloseRoom(ctx context.Context, name string) error {
	if err := c.store.DeleteRoom(ctx, name); err != nil {
		c.logger.Error("close room failed", "room", name, "error", err)
		return err
	}

	c.logger.Info("room closed", "room", name)

	return nil
}

// JoinRoom adds an alive user to an existing room.
// The storage insert itself tolerates an unknown room; at the service
// level joining a room that doesn't exist is a caller mistake, so it is
// checked explicitly and reported as storage.ErrRoomNotFound.
func (c *Chat) JoinRoom(ctx context.Context, login, room string) error {
	if err := c.requireAliveUser(ctx, login); err != nil {
		return err
	}

	exists, err := c.store.IsRoom(ctx, room)
	if err != nil {
		c.logger.Error("join room: room check failed", "room", room, "error", err)
		return err
	}
	if !exists {
		return storage.ErrRoomNotFound
	}

	if err := c.store.AddUserToRoom(ctx, login, room); err != nil {
		c.logger.Error("join room failed", "login", login, "room", room, "error", err)
		return err
	}

	return nil
}

// LeaveRoom removes the user's membership. Messages already posted by the
// user stay in the room's history.
func (c *Chat) LeaveRoom(ctx context.Context, login, room string) error {
	if err := c.store.DeleteUserFromRoom(ctx, login, room); err != nil {
		c.logger.Error("leave room failed", "login", login, "room", room, "error", err)
		return err
	}

	return nil
}
