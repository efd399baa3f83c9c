package runtime

import (
	"chat-sync/contract"
	"chat-sync/domain/chat"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"
)

var _ contract.IMembershipResolver = (*MembershipResolver)(nil)

// MembershipResolver is a read-through cache over the chat store.
// Entries never expire on their own: the collaborator mutating membership
// must call Invalidate. Each invalidation bumps a per-chat generation and a
// load started under an older generation is returned to its callers but never cached.
type MembershipResolver struct {
	mu          sync.Mutex
	log         *slog.Logger
	store       contract.ChatStore
	cache       map[chat.ChatID][]chat.ParticipantID
	generations map[chat.ChatID]uint64
	loads       singleflight.Group
}

func NewMembershipResolver(log *slog.Logger, store contract.ChatStore) *MembershipResolver {
	return &MembershipResolver{
		log:         log,
		store:       store,
		cache:       make(map[chat.ChatID][]chat.ParticipantID),
		generations: make(map[chat.ChatID]uint64),
	}
}

// MembersOf returns the ordered member set of chatID.
// Unknown chats fail with errors.ErrNotFound.
func (m *MembershipResolver) MembersOf(ctx context.Context, chatID chat.ChatID) ([]chat.ParticipantID, error) {
	m.mu.Lock()
	if members, ok := m.cache[chatID]; ok {
		m.mu.Unlock()
		return slices.Clone(members), nil
	}
	generation := m.generations[chatID]
	m.mu.Unlock()

	key := fmt.Sprintf("%s#%d", chatID, generation)
	v, err, _ := m.loads.Do(key, func() (any, error) {
		members, err := m.store.GetChatMembers(ctx, chatID)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		if m.generations[chatID] == generation {
			m.cache[chatID] = members
		}
		m.mu.Unlock()
		m.log.Debug("Membership loaded", "chat_id", chatID, "members", len(members))
		return members, nil
	})
	if err != nil {
		return nil, fmt.Errorf("members of chat %s: %w", chatID, err)
	}
	return slices.Clone(v.([]chat.ParticipantID)), nil
}

// Invalidate drops the cached membership of chatID; the next read reloads synchronously.
func (m *MembershipResolver) Invalidate(chatID chat.ChatID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cache, chatID)
	m.generations[chatID]++
}
