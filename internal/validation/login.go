package validation

import (
	"fmt"
	"regexp"
)

// LoginPattern определяет допустимый формат логина
// Только латинские буквы (a-z, A-Z), цифры (0-9), нижнее подчеркивание (_)
// Длина: 3-32 символа
var LoginPattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

// RoomNamePattern определяет допустимый формат имени комнаты
// Латинские буквы, цифры, нижнее подчеркивание и дефис
// Длина: 1-64 символа
var RoomNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

const (
	// MinLoginLen минимальная длина логина
	MinLoginLen = 3
	// MaxLoginLen максимальная длина логина
	MaxLoginLen = 32
	// MaxRoomNameLen максимальная длина имени комнаты
	MaxRoomNameLen = 64
)

// ValidateLogin проверяет, что логин соответствует требованиям
// Формат: только латинские буквы (a-z, A-Z), цифры (0-9), нижнее подчеркивание (_)
// Длина: 3-32 символа
func ValidateLogin(login string) error {
	if login == "" {
		return fmt.Errorf("login cannot be empty")
	}

	if len(login) < MinLoginLen {
		return fmt.Errorf("login must be at least %d characters long", MinLoginLen)
	}

	if len(login) > MaxLoginLen {
		return fmt.Errorf("login must not exceed %d characters", MaxLoginLen)
	}

	if !LoginPattern.MatchString(login) {
		return fmt.Errorf("login can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)")
	}

	return nil
}

// ValidateRoomName проверяет, что имя комнаты соответствует требованиям
func ValidateRoomName(name string) error {
	if name == "" {
		return fmt.Errorf("room name cannot be empty")
	}

	if len(name) > MaxRoomNameLen {
		return fmt.Errorf("room name must not exceed %d characters", MaxRoomNameLen)
	}

	if !RoomNamePattern.MatchString(name) {
		return fmt.Errorf("room name can only contain letters (a-z, A-Z), numbers (0-9), underscores (_) and dashes (-)")
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
// Минимум 8 символов
func ValidatePassword(password string) error {
	const minPasswordLen = 8

	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}

	return nil
}
