package service

import "errors"

// Service-level errors. Callers map them to their own failure reporting;
// storage sentinels (storage.ErrUserNotFound and friends) pass through
// untouched.
var (
	// ErrLoginTaken indicates that the login is already occupied,
	// by an active or a soft-deleted user
	ErrLoginTaken = errors.New("login already taken")

	// ErrInvalidCredentials indicates an unknown login or a wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserDeleted indicates that the user exists but is soft-deleted
	ErrUserDeleted = errors.New("user is deleted")

	// ErrNotRoomMember indicates that the user does not belong to the room
	ErrNotRoomMember = errors.New("user is not a member of the room")
)
