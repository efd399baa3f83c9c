package httpapi

import (
	"chat-sync/domain/chat"
	"chat-sync/services"
	"time"

	"github.com/samber/lo"
)

type credentialsRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createChatRequest struct {
	Name        string   `json:"name" validate:"max=64"`
	Description string   `json:"description" validate:"max=256"`
	Members     []string `json:"members" validate:"dive,required"`
}

type pinRequest struct {
	UserPIN string `json:"userPin" validate:"required,numeric,len=6"`
}

type postStatusRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
}

type tokenResponse struct {
	Token string               `json:"token"`
	User  *participantResponse `json:"user,omitempty"`
}

type participantResponse struct {
	ID   chat.ParticipantID `json:"id"`
	Name string             `json:"name"`
	PIN  string             `json:"pin"`
}

type chatResponse struct {
	ID          chat.ChatID          `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Type        chat.Kind            `json:"type"`
	Members     []chat.ParticipantID `json:"members"`
	CreatedAt   time.Time            `json:"createdAt"`
}

type messageResponse struct {
	ID        string             `json:"id"`
	ChatID    chat.ChatID        `json:"chatId"`
	SenderID  chat.ParticipantID `json:"senderId"`
	Content   string             `json:"content"`
	Type      chat.MessageType   `json:"type"`
	FileURL   string             `json:"fileUrl,omitempty"`
	FileName  string             `json:"fileName,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

type messagesResponse struct {
	Messages   []messageResponse `json:"messages"`
	NextCursor *string           `json:"nextCursor"`
}

type statusResponse struct {
	ID         string             `json:"id"`
	UserID     chat.ParticipantID `json:"userId"`
	AuthorName string             `json:"authorName"`
	Content    string             `json:"content,omitempty"`
	ImageURL   string             `json:"imageUrl,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	ExpiresAt  time.Time          `json:"expiresAt"`
}

func toParticipantResponse(p chat.Participant) participantResponse {
	return participantResponse{ID: p.ID, Name: p.Name, PIN: p.PIN}
}

func toChatResponse(c chat.Chat) chatResponse {
	return chatResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Type:        c.Kind,
		Members:     c.Members,
		CreatedAt:   c.CreatedAt,
	}
}

func toChatResponses(chats []chat.Chat) []chatResponse {
	return lo.Map(chats, func(c chat.Chat, _ int) chatResponse {
		return toChatResponse(c)
	})
}

func toMessageResponses(messages []chat.Message) []messageResponse {
	return lo.Map(messages, func(m chat.Message, _ int) messageResponse {
		return messageResponse{
			ID:        m.ID.String(),
			ChatID:    m.ChatID,
			SenderID:  m.SenderID,
			Content:   m.Content,
			Type:      m.Type,
			FileURL:   m.FileURL,
			FileName:  m.FileName,
			CreatedAt: m.CreatedAt,
		}
	})
}

func toStatusResponse(post chat.StatusPost, authorName string) statusResponse {
	return statusResponse{
		ID:         post.ID.String(),
		UserID:     post.AuthorID,
		AuthorName: authorName,
		Content:    post.Content,
		ImageURL:   post.ImageURL,
		CreatedAt:  post.CreatedAt,
		ExpiresAt:  post.ExpiresAt,
	}
}

func toStatusResponses(views []services.StatusView) []statusResponse {
	return lo.Map(views, func(v services.StatusView, _ int) statusResponse {
		return toStatusResponse(v.Post, v.AuthorName)
	})
}
