//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-sync/domain/chat"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Channel is one live duplex connection of a participant.
// Send must never block: a full outbox or a closed channel returns false.
type Channel interface {
	Send(payload []byte) bool
	Close() error
}

// DeliveryReport accounts one fan-out. Misses are outcomes, not errors.
type DeliveryReport struct {
	Audience  int
	Delivered int
	Missed    int
}

type TypingPublisher interface {
	PublishTyping(ctx context.Context, chatID chat.ChatID, participantID chat.ParticipantID, isTyping bool) (DeliveryReport, error)
}
