//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=../mocks/mock_store.go -package=mocks
package contract

import (
	"chat-sync/domain/chat"
	"context"

	"github.com/google/uuid"
)

// MessageStore is the durable, insert-ordered message log.
type MessageStore interface {
	InsertMessage(ctx context.Context, message chat.Message) error
	ListMessages(ctx context.Context, chatID chat.ChatID, cursor *string) ([]chat.Message, *string, error)
	// LastMessage returns the newest message of the chat, errors.ErrNotFound when it has none.
	LastMessage(ctx context.Context, chatID chat.ChatID) (chat.Message, error)
}

// ChatStore owns chats and their membership.
// Every mutation must be followed by an invalidation of the membership resolver.
type ChatStore interface {
	CreateChat(ctx context.Context, c chat.Chat) error
	GetChat(ctx context.Context, chatID chat.ChatID) (chat.Chat, error)
	GetChatMembers(ctx context.Context, chatID chat.ChatID) ([]chat.ParticipantID, error)
	AddChatMember(ctx context.Context, chatID chat.ChatID, participantID chat.ParticipantID) (chat.Chat, error)
	ListChatsFor(ctx context.Context, participantID chat.ParticipantID) ([]chat.Chat, error)
}

type StatusStore interface {
	InsertStatus(ctx context.Context, post chat.StatusPost) error
	GetStatus(ctx context.Context, id uuid.UUID) (chat.StatusPost, error)
	ListStatuses(ctx context.Context) ([]chat.StatusPost, error)
	DeleteStatus(ctx context.Context, id uuid.UUID) error
}

type ParticipantStore interface {
	CreateParticipant(ctx context.Context, p chat.Participant) error
	GetParticipant(ctx context.Context, id chat.ParticipantID) (chat.Participant, error)
	FindByPIN(ctx context.Context, pin string) (chat.Participant, error)
	FindByName(ctx context.Context, name string) (chat.Participant, error)
}
