package models

// Message представляет сообщение в комнате
//
// RoomSeq is a room-scoped identifier: it is meaningful only within one
// room and is used for ordering and range-based pagination of that room's
// history. The value is assigned by the writer, not by the store.
type Message struct {
	Text      string `json:"text"`       // текст сообщения
	CreatedAt int64  `json:"created_at"` // unix время отправки в наносекундах
	UserLogin string `json:"user_login"` // логин автора
	Room      string `json:"room"`       // имя комнаты
	RoomSeq   int64  `json:"room_seq"`   // номер сообщения внутри комнаты
}
