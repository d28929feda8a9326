package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/chatstore/internal/crypto"
	"github.com/iudanet/chatstore/internal/models"
	"github.com/iudanet/chatstore/internal/storage"
	"github.com/iudanet/chatstore/internal/validation"
)

// Register validates the login and password, hashes the password and
// creates the user. Returns ErrLoginTaken when the login is occupied,
// including by a soft-deleted user still holding it.
func (c *Chat) Register(ctx context.Context, login, name, password string, role models.Role) (*models.User, error) {
	if err := validation.ValidateLogin(login); err != nil {
		return nil, fmt.Errorf("invalid login: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}
	if name == "" {
		name = login
	}

	exists, err := c.store.IsUser(ctx, login)
	if err != nil {
		c.logger.Error("register: user lookup failed", "login", login, "error", err)
		return nil, err
	}
	if exists {
		return nil, ErrLoginTaken
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Login:        login,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UnixNano(),
	}

	// CreateUser идемпотентен по логину: гонку с параллельной регистрацией
	// выигрывает первая запись, вторая молча проигрывает
	if err := c.store.CreateUser(ctx, user); err != nil {
		c.logger.Error("register: create user failed", "login", login, "error", err)
		return nil, err
	}

	c.logger.Info("user registered", "login", login, "role", role)

	return user, nil
}

// Authenticate verifies the login/password pair and returns the user
// record. Returns ErrInvalidCredentials for an unknown login or a wrong
// password and ErrUserDeleted for a soft-deleted user. No tokens, no
// sessions: the enclosing server owns those.
func (c *Chat) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	user, err := c.store.GetUser(ctx, login)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		c.logger.Error("authenticate: user lookup failed", "login", login, "error", err)
		return nil, err
	}

	if !user.Alive() {
		return nil, ErrUserDeleted
	}

	if err := crypto.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Rename changes the user's display name.
// Returns storage.ErrUserNotFound for an unknown login.
func (c *Chat) Rename(ctx context.Context, login, name string) error {
	if name == "" {
		return fmt.Errorf("display name cannot be empty")
	}

	if err := c.store.ChangeUserName(ctx, login, name); err != nil {
		if !errors.Is(err, storage.ErrUserNotFound) {
			c.logger.Error("rename: change user name failed", "login", login, "error", err)
		}
		return err
	}

	return nil
}

// Unregister soft-deletes the user. The storage removes the record
// permanently once the user holds no memberships.
func (c *Chat) Unregister(ctx context.Context, login string) error {
	if err := c.store.DeleteUser(ctx, login); err != nil {
		c.logger.Error("unregister: delete user failed", "login", login, "error", err)
		return err
	}

	c.logger.Info("user unregistered", "login", login)

	return nil
}
