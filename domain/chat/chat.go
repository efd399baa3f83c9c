// Package chat contains the core concepts of the chat system.
// No runtime, network, or storage logic should be added here.
package chat

import (
	"chat-sync/errors"
	"fmt"
	"slices"
	"time"
)

type ChatID string

type Kind string

const (
	KindDirect Kind = "direct"
	KindGroup  Kind = "group"
)

// Chat is a conversation scoped to an ordered membership set.
// A direct chat always has exactly two members.
type Chat struct {
	ID          ChatID
	Name        string
	Description string
	Kind        Kind
	Members     []ParticipantID
	CreatedAt   time.Time
}

func (c Chat) HasMember(participantID ParticipantID) bool {
	return slices.Contains(c.Members, participantID)
}

// Validate checks the membership invariants of the chat.
func (c Chat) Validate() error {
	switch c.Kind {
	case KindDirect:
		if len(c.Members) != 2 || c.Members[0] == c.Members[1] {
			return fmt.Errorf("%w: a direct chat needs two distinct members, got %d", errors.ErrInvalidChat, len(c.Members))
		}
	case KindGroup:
		if len(c.Members) == 0 {
			return fmt.Errorf("%w: a group chat needs at least one member", errors.ErrInvalidChat)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", errors.ErrInvalidChat, c.Kind)
	}
	return nil
}

// WithMember returns a copy of the chat including participantID.
// Adding an existing member is a no-op; a direct chat never grows.
func (c Chat) WithMember(participantID ParticipantID) (Chat, error) {
	if c.HasMember(participantID) {
		return c, nil
	}
	if c.Kind == KindDirect {
		return c, fmt.Errorf("%w: cannot add a member to direct chat %s", errors.ErrInvalidChat, c.ID)
	}
	c.Members = append(slices.Clone(c.Members), participantID)
	return c, nil
}
