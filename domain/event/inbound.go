package event

import (
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Type string

const (
	TypeMessage Type = "message"
	TypeTyping  Type = "typing"
	TypeError   Type = "error"
)

var validate = validator.New()

// Inbound is the closed set of events a connected participant may send.
type Inbound interface {
	inbound()
}

type SendMessage struct {
	ChatID      chat.ChatID      `json:"chatId" validate:"required"`
	Content     string           `json:"content" validate:"max=4096"`
	MessageType chat.MessageType `json:"messageType" validate:"oneof=text file image"`
	FileURL     string           `json:"fileUrl,omitempty" validate:"required_unless=MessageType text"`
	FileName    string           `json:"fileName,omitempty"`
}

type TypingChanged struct {
	ChatID   chat.ChatID `json:"chatId" validate:"required"`
	IsTyping bool        `json:"isTyping"`
}

func (SendMessage) inbound()   {}
func (TypingChanged) inbound() {}

// ToCommand binds the event to the verified sender identity.
func (m SendMessage) ToCommand(senderID chat.ParticipantID) chat.PostMessageCommand {
	return chat.PostMessageCommand{
		ChatID:   m.ChatID,
		SenderID: senderID,
		Content:  m.Content,
		Type:     m.MessageType,
		FileURL:  m.FileURL,
		FileName: m.FileName,
	}
}

type envelope struct {
	Type Type            `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Decode parses one inbound frame.
// Both the wrapped form {"type":..,"data":{..}} and the flat form
// {"type":..,"chatId":..} are accepted.
func Decode(raw []byte) (Inbound, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrMalformedEvent, err)
	}
	payload := []byte(env.Data)
	if len(payload) == 0 || string(payload) == "null" {
		payload = raw
	}

	switch env.Type {
	case TypeMessage:
		var m SendMessage
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrMalformedEvent, err)
		}
		if m.MessageType == "" {
			m.MessageType = chat.MessageText
		}
		m.Content = strings.TrimSpace(m.Content)
		if m.MessageType == chat.MessageText && m.Content == "" {
			return nil, fmt.Errorf("%w: empty text message", errors.ErrMalformedEvent)
		}
		if err := validate.Struct(m); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrMalformedEvent, err)
		}
		return m, nil
	case TypeTyping:
		var t TypingChanged
		if err := json.Unmarshal(payload, &t); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrMalformedEvent, err)
		}
		if err := validate.Struct(t); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrMalformedEvent, err)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", errors.ErrMalformedEvent, env.Type)
	}
}
