package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrRoomNotFound indicates that room was not found in storage
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomAlreadyExists indicates that a room with this name already exists
	ErrRoomAlreadyExists = errors.New("room already exists")
)
