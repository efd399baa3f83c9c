package runtime

import (
	"chat-sync/contract"
	"chat-sync/domain/chat"
	"context"
	"log/slog"
	"sync"
	"time"
)

const DefaultTypingTimeout = 3 * time.Second

var _ contract.ITypingTracker = (*TypingTracker)(nil)

// TypingTracker holds one state machine per (chat, participant).
// Idle pairs have no entry. A typing entry owns exactly one scheduled timer;
// every terminal transition cancels it and deletes the entry.
//
// Transitions of one pair and their publishes happen under the pair lock,
// so recipients observe them in the order the tracker applied them.
type TypingTracker struct {
	mu             sync.Mutex
	log            *slog.Logger
	publisher      contract.TypingPublisher
	scheduler      contract.IScheduler
	timeout        time.Duration
	publishTimeout time.Duration
	entries        map[chat.TypingKey]*typingEntry
	pairs          map[chat.TypingKey]*pairLock
}

// pairLock is dropped once no caller holds or waits for it.
type pairLock struct {
	sync.Mutex
	refs int
}

type typingEntry struct {
	timer contract.TimerID
	// generation identifies the timer that may still fire for this entry
	generation uint64
}

func NewTypingTracker(log *slog.Logger, publisher contract.TypingPublisher,
	scheduler contract.IScheduler, timeout time.Duration) *TypingTracker {
	if timeout <= 0 {
		timeout = DefaultTypingTimeout
	}
	return &TypingTracker{
		log:            log,
		publisher:      publisher,
		scheduler:      scheduler,
		timeout:        timeout,
		publishTimeout: 5 * time.Second,
		entries:        make(map[chat.TypingKey]*typingEntry),
		pairs:          make(map[chat.TypingKey]*pairLock),
	}
}

// Signal records an input change. The first signal of a burst emits isTyping=true;
// later signals only push the inactivity deadline back.
func (t *TypingTracker) Signal(ctx context.Context, chatID chat.ChatID, participantID chat.ParticipantID) error {
	key := chat.TypingKey{ChatID: chatID, ParticipantID: participantID}
	unlock := t.lockPair(key)
	defer unlock()

	t.mu.Lock()
	if entry, ok := t.entries[key]; ok {
		t.scheduler.Cancel(entry.timer)
		t.arm(key, entry)
		t.mu.Unlock()
		return nil
	}
	entry := &typingEntry{}
	t.arm(key, entry)
	t.entries[key] = entry
	t.mu.Unlock()

	if _, err := t.publisher.PublishTyping(ctx, chatID, participantID, true); err != nil {
		t.clear(key)
		return err
	}
	return nil
}

// Stop moves the pair to idle immediately and emits isTyping=false.
// It is a no-op when the pair is already idle.
func (t *TypingTracker) Stop(ctx context.Context, chatID chat.ChatID, participantID chat.ParticipantID) error {
	key := chat.TypingKey{ChatID: chatID, ParticipantID: participantID}
	unlock := t.lockPair(key)
	defer unlock()

	if !t.clear(key) {
		return nil
	}
	_, err := t.publisher.PublishTyping(ctx, chatID, participantID, false)
	return err
}

// MessageSent ends typing for the pair; called before the message is published
// so recipients observe isTyping=false no later than the message.
func (t *TypingTracker) MessageSent(ctx context.Context, chatID chat.ChatID, participantID chat.ParticipantID) error {
	return t.Stop(ctx, chatID, participantID)
}

// ParticipantGone ends typing in every chat of participantID.
// It is registered as an unregister hook of the connection registry.
func (t *TypingTracker) ParticipantGone(participantID chat.ParticipantID) {
	t.mu.Lock()
	var owned []chat.TypingKey
	for key := range t.entries {
		if key.ParticipantID == participantID {
			owned = append(owned, key)
		}
	}
	t.mu.Unlock()

	for _, key := range owned {
		unlock := t.lockPair(key)
		if t.clear(key) {
			t.publishIdle(key)
		}
		unlock()
	}
}

// IsTyping reports the current state of the pair.
func (t *TypingTracker) IsTyping(chatID chat.ChatID, participantID chat.ParticipantID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.entries[chat.TypingKey{ChatID: chatID, ParticipantID: participantID}]
	return ok
}

// Active returns the number of pairs currently typing.
func (t *TypingTracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// arm schedules the inactivity timer of entry. Caller holds t.mu.
func (t *TypingTracker) arm(key chat.TypingKey, entry *typingEntry) {
	entry.generation++
	generation := entry.generation
	entry.timer = t.scheduler.After(t.timeout, func() {
		t.expire(key, entry, generation)
	})
}

func (t *TypingTracker) expire(key chat.TypingKey, entry *typingEntry, generation uint64) {
	unlock := t.lockPair(key)
	defer unlock()

	t.mu.Lock()
	current, ok := t.entries[key]
	if !ok || current != entry || entry.generation != generation {
		t.mu.Unlock()
		return
	}
	delete(t.entries, key)
	t.mu.Unlock()

	t.log.Debug("Typing timed out", "chat_id", key.ChatID, "participant_id", key.ParticipantID)
	t.publishIdle(key)
}

// lockPair serializes the transitions of key and returns the matching unlock.
// It must not be called with t.mu held.
func (t *TypingTracker) lockPair(key chat.TypingKey) func() {
	t.mu.Lock()
	pair, ok := t.pairs[key]
	if !ok {
		pair = &pairLock{}
		t.pairs[key] = pair
	}
	pair.refs++
	t.mu.Unlock()

	pair.Lock()
	return func() {
		pair.Unlock()
		t.mu.Lock()
		pair.refs--
		if pair.refs == 0 {
			delete(t.pairs, key)
		}
		t.mu.Unlock()
	}
}

// clear deletes the entry of key and cancels its timer. It reports whether the pair was typing.
func (t *TypingTracker) clear(key chat.TypingKey) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[key]
	if !ok {
		return false
	}
	t.scheduler.Cancel(entry.timer)
	delete(t.entries, key)
	return true
}

func (t *TypingTracker) publishIdle(key chat.TypingKey) {
	ctx, cancel := context.WithTimeout(context.Background(), t.publishTimeout)
	defer cancel()
	if _, err := t.publisher.PublishTyping(ctx, key.ChatID, key.ParticipantID, false); err != nil {
		t.log.Warn("Publishing typing stop failed",
			"chat_id", key.ChatID,
			"participant_id", key.ParticipantID,
			"error", err)
	}
}
