package event

import (
	"chat-sync/domain/chat"
	"encoding/json"
	"time"
)

// Outbound is the envelope pushed to a connection.
// The JSON schema is fixed: clients switch on "type".
type Outbound struct {
	Type Type `json:"type"`
	Data any  `json:"data"`
}

type MessageData struct {
	ID        string             `json:"id"`
	ChatID    chat.ChatID        `json:"chatId"`
	SenderID  chat.ParticipantID `json:"senderId"`
	Content   string             `json:"content"`
	Type      chat.MessageType   `json:"type"`
	FileURL   string             `json:"fileUrl,omitempty"`
	FileName  string             `json:"fileName,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

type TypingData struct {
	ChatID   chat.ChatID        `json:"chatId"`
	UserID   chat.ParticipantID `json:"userId"`
	IsTyping bool               `json:"isTyping"`
}

type ErrorData struct {
	Message string `json:"message"`
}

func NewMessageEvent(m chat.Message) Outbound {
	return Outbound{Type: TypeMessage, Data: ToMessageData(m)}
}

func NewTypingEvent(chatID chat.ChatID, participantID chat.ParticipantID, isTyping bool) Outbound {
	return Outbound{Type: TypeTyping, Data: TypingData{ChatID: chatID, UserID: participantID, IsTyping: isTyping}}
}

func NewErrorEvent(err error) Outbound {
	return Outbound{Type: TypeError, Data: ErrorData{Message: err.Error()}}
}

func (o Outbound) Encode() ([]byte, error) {
	return json.Marshal(o)
}

func ToMessageData(m chat.Message) MessageData {
	return MessageData{
		ID:        m.ID.String(),
		ChatID:    m.ChatID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		Type:      m.Type,
		FileURL:   m.FileURL,
		FileName:  m.FileName,
		CreatedAt: m.CreatedAt,
	}
}
