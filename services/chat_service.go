package services

import (
	"chat-sync/contract"
	"chat-sync/domain/chat"
	"chat-sync/domain/event"
	"chat-sync/errors"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IChatService interface {
	OnConnectionOpened(ctx context.Context, participantID chat.ParticipantID, channel contract.Channel) error
	OnConnectionClosed(participantID chat.ParticipantID, channel contract.Channel)
	OnInboundEvent(ctx context.Context, participantID chat.ParticipantID, raw []byte) error
	PostMessage(ctx context.Context, cmd chat.PostMessageCommand) (chat.Message, error)
	ChangeTyping(ctx context.Context, participantID chat.ParticipantID, chatID chat.ChatID, isTyping bool) error
	CreateChat(ctx context.Context, cmd chat.CreateChatCommand) (chat.Chat, error)
	CreateDirectChat(ctx context.Context, creatorID chat.ParticipantID, pin string) (chat.Chat, error)
	AddMember(ctx context.Context, actorID chat.ParticipantID, chatID chat.ChatID, pin string) (chat.Chat, error)
	ListChats(ctx context.Context, participantID chat.ParticipantID) ([]chat.Chat, error)
	ListMessages(ctx context.Context, participantID chat.ParticipantID, cmd chat.GetMessagesCommand) ([]chat.Message, *string, error)
	SearchByPIN(ctx context.Context, pin string) (chat.Participant, error)
}

const maxContentLength = 4096

// ChatService is the entry point of the external collaborators (transport and HTTP).
// Messages of one chat are persisted and published under a per-chat lock, so the
// store order, the CreatedAt order and the delivery order are the same.
type ChatService struct {
	log          *slog.Logger
	messages     contract.MessageStore
	chats        contract.ChatStore
	participants contract.ParticipantStore
	core         contract.Core
	censor       contract.Censor
	now          func() time.Time

	mu     sync.Mutex
	chatMu map[chat.ChatID]*chatClock
}

// chatClock serializes posts of one chat and keeps CreatedAt strictly increasing.
// It lives only while a post of its chat is in progress; a new one is seeded
// from the newest stored message, which also covers restarts.
type chatClock struct {
	sync.Mutex
	last   time.Time
	seeded bool
	refs   int
}

// NewChatService wires the service to the realtime core. censor may be nil.
func NewChatService(log *slog.Logger, messages contract.MessageStore, chats contract.ChatStore,
	participants contract.ParticipantStore, core contract.Core, censor contract.Censor) *ChatService {
	return &ChatService{
		log:          log,
		messages:     messages,
		chats:        chats,
		participants: participants,
		core:         core,
		censor:       censor,
		now:          time.Now,
		chatMu:       make(map[chat.ChatID]*chatClock),
	}
}

// OnConnectionOpened binds a verified participant to its new connection.
func (s *ChatService) OnConnectionOpened(ctx context.Context, participantID chat.ParticipantID, channel contract.Channel) error {
	if _, err := s.participants.GetParticipant(ctx, participantID); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return fmt.Errorf("%w: unknown participant %s", errors.ErrUnauthorized, participantID)
		}
		return err
	}
	previous, err := s.core.Registry.Register(participantID, channel)
	if err != nil {
		return err
	}
	s.log.Info("Participant connected", "participant_id", participantID, "replaced", previous != nil)
	return nil
}

func (s *ChatService) OnConnectionClosed(participantID chat.ParticipantID, channel contract.Channel) {
	if s.core.Registry.Unregister(participantID, channel) {
		s.log.Info("Participant disconnected", "participant_id", participantID)
	}
}

// OnInboundEvent decodes and applies one frame sent by participantID.
func (s *ChatService) OnInboundEvent(ctx context.Context, participantID chat.ParticipantID, raw []byte) error {
	inbound, err := event.Decode(raw)
	if err != nil {
		return err
	}
	switch e := inbound.(type) {
	case event.SendMessage:
		_, err = s.PostMessage(ctx, e.ToCommand(participantID))
	case event.TypingChanged:
		err = s.ChangeTyping(ctx, participantID, e.ChatID, e.IsTyping)
	default:
		err = fmt.Errorf("%w: unsupported event %T", errors.ErrMalformedEvent, e)
	}
	return err
}

// PostMessage persists a message then fans it out to every member of its chat,
// the sender included. The sender's typing state is cleared before the publish.
func (s *ChatService) PostMessage(ctx context.Context, cmd chat.PostMessageCommand) (chat.Message, error) {
	if err := validateMessage(&cmd); err != nil {
		return chat.Message{}, err
	}
	if err := s.requireMember(ctx, cmd.ChatID, cmd.SenderID); err != nil {
		return chat.Message{}, err
	}

	if s.censor != nil && cmd.Content != "" {
		sanitized, words := s.censor.Censor(cmd.Content)
		if len(words) > 0 {
			s.log.Debug("Message censored", "chat_id", cmd.ChatID, "sender_id", cmd.SenderID, "words", len(words))
		}
		cmd.Content = sanitized
	}

	clock, err := s.acquireClock(ctx, cmd.ChatID)
	if err != nil {
		return chat.Message{}, err
	}
	defer s.releaseClock(cmd.ChatID, clock)

	message := chat.Message{
		ID:        uuid.New(),
		ChatID:    cmd.ChatID,
		SenderID:  cmd.SenderID,
		Content:   cmd.Content,
		Type:      cmd.Type,
		FileURL:   cmd.FileURL,
		FileName:  cmd.FileName,
		CreatedAt: clock.next(s.now().UTC()),
	}
	if err := s.messages.InsertMessage(ctx, message); err != nil {
		return chat.Message{}, fmt.Errorf("insert message: %w", err)
	}

	if err := s.core.Typing.MessageSent(ctx, message.ChatID, message.SenderID); err != nil {
		s.log.Warn("Clearing typing state failed", "chat_id", message.ChatID, "participant_id", message.SenderID, "error", err)
	}
	// The message is durable at this point, a failed fan-out is not a failed post
	if _, err := s.core.Router.PublishMessage(ctx, message); err != nil {
		s.log.Warn("Publishing message failed", "chat_id", message.ChatID, "message_id", message.ID, "error", err)
	}
	return message, nil
}

// ChangeTyping feeds an input signal to the typing tracker.
// isTyping=false is an explicit stop.
func (s *ChatService) ChangeTyping(ctx context.Context, participantID chat.ParticipantID, chatID chat.ChatID, isTyping bool) error {
	if err := s.requireMember(ctx, chatID, participantID); err != nil {
		return err
	}
	if isTyping {
		return s.core.Typing.Signal(ctx, chatID, participantID)
	}
	return s.core.Typing.Stop(ctx, chatID, participantID)
}

// CreateChat creates a chat whose members are the creator followed by cmd.Members.
func (s *ChatService) CreateChat(ctx context.Context, cmd chat.CreateChatCommand) (chat.Chat, error) {
	if cmd.Kind == "" {
		cmd.Kind = chat.KindGroup
	}
	members := lo.Uniq(append([]chat.ParticipantID{cmd.CreatorID}, cmd.Members...))
	for _, member := range members[1:] {
		if _, err := s.participants.GetParticipant(ctx, member); err != nil {
			return chat.Chat{}, err
		}
	}

	c := chat.Chat{
		ID:          chat.ChatID(uuid.NewString()),
		Name:        strings.TrimSpace(cmd.Name),
		Description: strings.TrimSpace(cmd.Description),
		Kind:        cmd.Kind,
		Members:     members,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.chats.CreateChat(ctx, c); err != nil {
		return chat.Chat{}, err
	}
	s.core.Resolver.Invalidate(c.ID)
	s.log.Info("Chat created", "chat_id", c.ID, "kind", c.Kind, "members", len(c.Members))
	return c, nil
}

// CreateDirectChat opens the direct chat between creatorID and the owner of pin.
// An existing direct chat between the pair is returned instead of a duplicate.
func (s *ChatService) CreateDirectChat(ctx context.Context, creatorID chat.ParticipantID, pin string) (chat.Chat, error) {
	contact, err := s.participants.FindByPIN(ctx, pin)
	if err != nil {
		return chat.Chat{}, err
	}
	if contact.ID == creatorID {
		return chat.Chat{}, fmt.Errorf("%w: cannot open a direct chat with yourself", errors.ErrInvalidChat)
	}

	existing, err := s.chats.ListChatsFor(ctx, creatorID)
	if err != nil {
		return chat.Chat{}, err
	}
	if c, ok := lo.Find(existing, func(c chat.Chat) bool {
		return c.Kind == chat.KindDirect && c.HasMember(contact.ID)
	}); ok {
		return c, nil
	}

	return s.CreateChat(ctx, chat.CreateChatCommand{
		Name:      contact.Name,
		Kind:      chat.KindDirect,
		CreatorID: creatorID,
		Members:   []chat.ParticipantID{contact.ID},
	})
}

// AddMember adds the owner of pin to a group chat actorID belongs to.
func (s *ChatService) AddMember(ctx context.Context, actorID chat.ParticipantID, chatID chat.ChatID, pin string) (chat.Chat, error) {
	current, err := s.chats.GetChat(ctx, chatID)
	if err != nil {
		return chat.Chat{}, err
	}
	if !current.HasMember(actorID) {
		return chat.Chat{}, errors.ErrNotMember
	}
	contact, err := s.participants.FindByPIN(ctx, pin)
	if err != nil {
		return chat.Chat{}, err
	}

	updated, err := s.chats.AddChatMember(ctx, chatID, contact.ID)
	if err != nil {
		return chat.Chat{}, err
	}
	s.core.Resolver.Invalidate(chatID)
	return updated, nil
}

func (s *ChatService) ListChats(ctx context.Context, participantID chat.ParticipantID) ([]chat.Chat, error) {
	return s.chats.ListChatsFor(ctx, participantID)
}

func (s *ChatService) ListMessages(ctx context.Context, participantID chat.ParticipantID,
	cmd chat.GetMessagesCommand) ([]chat.Message, *string, error) {
	if err := s.requireMember(ctx, cmd.ChatID, participantID); err != nil {
		return nil, nil, err
	}
	return s.messages.ListMessages(ctx, cmd.ChatID, cmd.Cursor)
}

func (s *ChatService) SearchByPIN(ctx context.Context, pin string) (chat.Participant, error) {
	return s.participants.FindByPIN(ctx, pin)
}

func (s *ChatService) requireMember(ctx context.Context, chatID chat.ChatID, participantID chat.ParticipantID) error {
	members, err := s.core.Resolver.MembersOf(ctx, chatID)
	if err != nil {
		return err
	}
	if !slices.Contains(members, participantID) {
		return fmt.Errorf("%w: %s in chat %s", errors.ErrNotMember, participantID, chatID)
	}
	return nil
}

// acquireClock returns the locked clock of chatID, seeded on first use.
func (s *ChatService) acquireClock(ctx context.Context, chatID chat.ChatID) (*chatClock, error) {
	s.mu.Lock()
	clock, ok := s.chatMu[chatID]
	if !ok {
		clock = &chatClock{}
		s.chatMu[chatID] = clock
	}
	clock.refs++
	s.mu.Unlock()

	clock.Lock()
	if clock.seeded {
		return clock, nil
	}
	last, err := s.messages.LastMessage(ctx, chatID)
	switch {
	case err == nil:
		clock.last = last.CreatedAt
	case !errors.Is(err, errors.ErrNotFound):
		s.releaseClock(chatID, clock)
		return nil, fmt.Errorf("seed clock of chat %s: %w", chatID, err)
	}
	clock.seeded = true
	return clock, nil
}

// releaseClock unlocks clock and drops it once no post of its chat is pending.
func (s *ChatService) releaseClock(chatID chat.ChatID, clock *chatClock) {
	clock.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	clock.refs--
	if clock.refs == 0 {
		delete(s.chatMu, chatID)
	}
}


// next returns now, or 1ns after the previous timestamp if the clock did not move forward.
func (c *chatClock) next(now time.Time) time.Time {
	if !now.After(c.last) {
		now = c.last.Add(time.Nanosecond)
	}
	c.last = now
	return now
}

func validateMessage(cmd *chat.PostMessageCommand) error {
	if cmd.Type == "" {
		cmd.Type = chat.MessageText
	}
	cmd.Content = strings.TrimSpace(cmd.Content)
	switch cmd.Type {
	case chat.MessageText:
		if cmd.Content == "" {
			return fmt.Errorf("%w: empty message", errors.ErrInvalidRequest)
		}
	case chat.MessageFile, chat.MessageImage:
		if cmd.FileURL == "" {
			return fmt.Errorf("%w: %s message without fileUrl", errors.ErrInvalidRequest, cmd.Type)
		}
	default:
		return fmt.Errorf("%w: unknown message type %q", errors.ErrInvalidRequest, cmd.Type)
	}
	if len(cmd.Content) > maxContentLength {
		return fmt.Errorf("%w: content exceeds %d bytes", errors.ErrInvalidRequest, maxContentLength)
	}
	return nil
}
