//go:generate go run go.uber.org/mock/mockgen -source=runtime.go -destination=../mocks/mock_runtime.go -package=mocks
package contract

import (
	"chat-sync/domain/chat"
	"context"
	"time"
)

type UnregisterHook func(participantID chat.ParticipantID)

type IRegistry interface {
	Register(participantID chat.ParticipantID, channel Channel) (Channel, error)
	Unregister(participantID chat.ParticipantID, channel Channel) bool
	Lookup(participantID chat.ParticipantID) (Channel, bool)
	Send(participantID chat.ParticipantID, payload []byte) bool
	OnUnregister(hook UnregisterHook)
}

type IMembershipResolver interface {
	MembersOf(ctx context.Context, chatID chat.ChatID) ([]chat.ParticipantID, error)
	Invalidate(chatID chat.ChatID)
}

type IRouter interface {
	TypingPublisher
	PublishMessage(ctx context.Context, message chat.Message) (DeliveryReport, error)
}

type ITypingTracker interface {
	Signal(ctx context.Context, chatID chat.ChatID, participantID chat.ParticipantID) error
	Stop(ctx context.Context, chatID chat.ChatID, participantID chat.ParticipantID) error
	MessageSent(ctx context.Context, chatID chat.ChatID, participantID chat.ParticipantID) error
	ParticipantGone(participantID chat.ParticipantID)
}

type IExpiryEngine interface {
	Track(post chat.StatusPost)
	ListActive(ctx context.Context) ([]chat.StatusPost, error)
	Recover(ctx context.Context) error
	TTL() time.Duration
}

type TimerID uint64

// IScheduler runs one-shot callbacks on a shared time-driven loop.
type IScheduler interface {
	Schedule(at time.Time, fn func()) TimerID
	After(d time.Duration, fn func()) TimerID
	Cancel(id TimerID) bool
	Now() time.Time
}

// Censor rewrites message content before it is persisted and broadcast.
// It returns the sanitized text and the dictionary words it matched.
type Censor interface {
	Censor(original string) (string, []string)
}

// Core bundles the realtime components consumed by the service layer.
type Core struct {
	Registry IRegistry
	Resolver IMembershipResolver
	Router   IRouter
	Typing   ITypingTracker
	Expiry   IExpiryEngine
}
