package runtime

import (
	"chat-sync/contract"
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"log/slog"
	"sync"
)

var _ contract.IRegistry = (*Registry)(nil)

// Registry maps a verified participant to its single authoritative connection.
// Register, Unregister and Send are linearizable with respect to each other:
// Send holds the read lock while enqueuing, so it never reaches a channel
// that has already been superseded or unregistered.
type Registry struct {
	mu       sync.RWMutex
	log      *slog.Logger
	sessions map[chat.ParticipantID]contract.Channel
	hooks    []contract.UnregisterHook
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		log:      log,
		sessions: make(map[chat.ParticipantID]contract.Channel),
	}
}

// OnUnregister adds a hook called after a participant's current connection is removed.
// Hooks run outside the registry lock.
func (r *Registry) OnUnregister(hook contract.UnregisterHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, hook)
}

// Register binds channel to participantID and returns the superseded channel, if any.
// The superseded channel is closed so a stale socket never receives duplicates.
func (r *Registry) Register(participantID chat.ParticipantID, channel contract.Channel) (contract.Channel, error) {
	if participantID == "" {
		return nil, errors.ErrUnauthorized
	}
	if channel == nil {
		return nil, errors.ErrNilChannel
	}

	r.mu.Lock()
	previous := r.sessions[participantID]
	r.sessions[participantID] = channel
	r.mu.Unlock()

	if previous == nil || previous == channel {
		return nil, nil
	}
	r.log.Debug("Connection superseded", "participant_id", participantID)
	if err := previous.Close(); err != nil {
		r.log.Debug("Closing superseded connection failed", "participant_id", participantID, "error", err)
	}
	return previous, nil
}

// Unregister removes channel only if it is still the current one,
// so a late disconnect of a superseded socket cannot evict its replacement.
func (r *Registry) Unregister(participantID chat.ParticipantID, channel contract.Channel) bool {
	r.mu.Lock()
	current, ok := r.sessions[participantID]
	if !ok || current != channel {
		r.mu.Unlock()
		return false
	}
	delete(r.sessions, participantID)
	hooks := append([]contract.UnregisterHook(nil), r.hooks...)
	r.mu.Unlock()

	for _, hook := range hooks {
		hook(participantID)
	}
	return true
}

func (r *Registry) Lookup(participantID chat.ParticipantID) (contract.Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	channel, ok := r.sessions[participantID]
	return channel, ok
}

// Send enqueues payload on the participant's connection.
// It returns false when the participant has no live connection; the payload is dropped.
func (r *Registry) Send(participantID chat.ParticipantID, payload []byte) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	channel, ok := r.sessions[participantID]
	if !ok {
		return false
	}
	return channel.Send(payload)
}

// Connected returns the number of live connections.
func (r *Registry) Connected() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
