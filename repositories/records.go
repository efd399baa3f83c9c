package repositories

import (
	"chat-sync/domain/chat"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Disk records are the JSON layout persisted in badger.
// Times are stored as unix nanoseconds and read back in UTC.

type diskMessage struct {
	ID        string `json:"id"`
	ChatID    string `json:"chat_id"`
	SenderID  string `json:"sender_id"`
	Content   string `json:"content"`
	Type      string `json:"type"`
	FileURL   string `json:"file_url,omitempty"`
	FileName  string `json:"file_name,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

func fromMessage(m chat.Message) diskMessage {
	return diskMessage{
		ID:        m.ID.String(),
		ChatID:    string(m.ChatID),
		SenderID:  string(m.SenderID),
		Content:   m.Content,
		Type:      string(m.Type),
		FileURL:   m.FileURL,
		FileName:  m.FileName,
		CreatedAt: m.CreatedAt.UnixNano(),
	}
}

func (d diskMessage) toMessage() (chat.Message, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return chat.Message{}, err
	}
	return chat.Message{
		ID:        id,
		ChatID:    chat.ChatID(d.ChatID),
		SenderID:  chat.ParticipantID(d.SenderID),
		Content:   d.Content,
		Type:      chat.MessageType(d.Type),
		FileURL:   d.FileURL,
		FileName:  d.FileName,
		CreatedAt: time.Unix(0, d.CreatedAt).UTC(),
	}, nil
}

type diskChat struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Kind        string   `json:"kind"`
	Members     []string `json:"members"`
	CreatedAt   int64    `json:"created_at"`
}

func fromChat(c chat.Chat) diskChat {
	return diskChat{
		ID:          string(c.ID),
		Name:        c.Name,
		Description: c.Description,
		Kind:        string(c.Kind),
		Members: lo.Map(c.Members, func(p chat.ParticipantID, _ int) string {
			return string(p)
		}),
		CreatedAt: c.CreatedAt.UnixNano(),
	}
}

func (d diskChat) toChat() chat.Chat {
	return chat.Chat{
		ID:          chat.ChatID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		Kind:        chat.Kind(d.Kind),
		Members: lo.Map(d.Members, func(p string, _ int) chat.ParticipantID {
			return chat.ParticipantID(p)
		}),
		CreatedAt: time.Unix(0, d.CreatedAt).UTC(),
	}
}

type diskStatus struct {
	ID        string `json:"id"`
	AuthorID  string `json:"author_id"`
	Content   string `json:"content"`
	ImageURL  string `json:"image_url,omitempty"`
	CreatedAt int64  `json:"created_at"`
	ExpiresAt int64  `json:"expires_at"`
}

func fromStatus(s chat.StatusPost) diskStatus {
	return diskStatus{
		ID:        s.ID.String(),
		AuthorID:  string(s.AuthorID),
		Content:   s.Content,
		ImageURL:  s.ImageURL,
		CreatedAt: s.CreatedAt.UnixNano(),
		ExpiresAt: s.ExpiresAt.UnixNano(),
	}
}

func (d diskStatus) toStatus() (chat.StatusPost, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return chat.StatusPost{}, err
	}
	return chat.StatusPost{
		ID:        id,
		AuthorID:  chat.ParticipantID(d.AuthorID),
		Content:   d.Content,
		ImageURL:  d.ImageURL,
		CreatedAt: time.Unix(0, d.CreatedAt).UTC(),
		ExpiresAt: time.Unix(0, d.ExpiresAt).UTC(),
	}, nil
}

type diskParticipant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PIN          string `json:"pin"`
	PasswordHash string `json:"password_hash,omitempty"`
}
