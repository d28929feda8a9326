package models

// Room представляет комнату чата
type Room struct {
	Name      string `json:"name"`       // уникальное имя комнаты
	CreatedAt int64  `json:"created_at"` // unix время создания в наносекундах
}
