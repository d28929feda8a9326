package models

// Role определяет роль пользователя в чате
type Role = string

const (
	// RoleUser обычный участник чата
	RoleUser Role = "user"
	// RoleAdmin администратор с правами управления комнатами
	RoleAdmin Role = "admin"
)

// User представляет пользователя чата
type User struct {
	Login        string `json:"login"`         // уникальный логин, неизменяемый
	Name         string `json:"name"`          // отображаемое имя, можно менять
	PasswordHash string `json:"password_hash"` // bcrypt хеш пароля
	Role         Role   `json:"role"`          // роль пользователя
	IsDeleted    bool   `json:"is_deleted"`    // флаг мягкого удаления
	CreatedAt    int64  `json:"created_at"`    // unix время создания в наносекундах
}

// Alive reports whether the user is present and not soft-deleted.
func (u *User) Alive() bool {
	return !u.IsDeleted
}
