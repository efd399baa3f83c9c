package chat

import (
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	MessageText  MessageType = "text"
	MessageFile  MessageType = "file"
	MessageImage MessageType = "image"
)

// Message is immutable once persisted.
// CreatedAt is non-decreasing within a chat and defines the ordering.
type Message struct {
	ID        uuid.UUID
	ChatID    ChatID
	SenderID  ParticipantID
	Content   string
	Type      MessageType
	FileURL   string
	FileName  string
	CreatedAt time.Time
}
