package services

import (
	"chat-sync/contract"
	"chat-sync/domain/chat"
	"chat-sync/repositories"
	"chat-sync/runtime"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type outFrame struct {
	Type     string `json:"type"`
	ChatID   string `json:"chatId"`
	SenderID string `json:"senderId"`
	UserID   string `json:"userId"`
	Content  string `json:"content"`
	IsTyping bool   `json:"isTyping"`
}

type recordingChannel struct {
	mu       sync.Mutex
	payloads [][]byte
	closed   bool
}

func (c *recordingChannel) Send(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.payloads = append(c.payloads, payload)
	return true
}

func (c *recordingChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *recordingChannel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// frames flattens every received envelope for easy comparison.
func (c *recordingChannel) frames(t *testing.T) []outFrame {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	res := make([]outFrame, 0, len(c.payloads))
	for _, p := range c.payloads {
		var f frame
		require.NoError(t, json.Unmarshal(p, &f))
		var out outFrame
		require.NoError(t, json.Unmarshal(f.Data, &out))
		out.Type = f.Type
		res = append(res, out)
	}
	return res
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// harness wires the realtime core on a temporary badger store.
// The scheduler loop is not started: timers only fire through FireDue.
type harness struct {
	log          *slog.Logger
	clock        *fakeClock
	scheduler    *runtime.Scheduler
	registry     *runtime.Registry
	typing       *runtime.TypingTracker
	expiry       *runtime.ExpiryEngine
	messages     repositories.MessageRepository
	chats        repositories.ChatRepository
	statuses     repositories.StatusRepository
	participants repositories.ParticipantRepository
	chat         *ChatService
	status       *StatusService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	clock := &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	h := &harness{
		log:          log,
		clock:        clock,
		messages:     repositories.NewMessageRepository(db, log, nil),
		chats:        repositories.NewChatRepository(db, log),
		statuses:     repositories.NewStatusRepository(db, log),
		participants: repositories.NewParticipantRepository(db),
	}
	h.scheduler = runtime.NewScheduler(log, clock.Now)
	h.registry = runtime.NewRegistry(log)
	resolver := runtime.NewMembershipResolver(log, h.chats)
	router := runtime.NewRouter(log, h.registry, resolver, nil)
	h.typing = runtime.NewTypingTracker(log, router, h.scheduler, runtime.DefaultTypingTimeout)
	h.expiry = runtime.NewExpiryEngine(log, h.statuses, h.scheduler, chat.DefaultStatusTTL)
	h.registry.OnUnregister(h.typing.ParticipantGone)

	core := contract.Core{
		Registry: h.registry,
		Resolver: resolver,
		Router:   router,
		Typing:   h.typing,
		Expiry:   h.expiry,
	}
	h.chat = NewChatService(log, h.messages, h.chats, h.participants, core, nil)
	h.chat.now = clock.Now
	h.status = NewStatusService(log, h.statuses, h.participants, h.expiry)
	h.status.now = clock.Now
	return h
}

// join registers participants and connects each of them.
func (h *harness) join(t *testing.T, names ...string) map[string]*recordingChannel {
	t.Helper()
	channels := make(map[string]*recordingChannel, len(names))
	for i, name := range names {
		p := chat.Participant{ID: chat.ParticipantID(name), Name: name, PIN: pinOf(i)}
		require.NoError(t, h.participants.CreateParticipant(context.Background(), p))
		c := &recordingChannel{}
		require.NoError(t, h.chat.OnConnectionOpened(context.Background(), p.ID, c))
		channels[name] = c
	}
	return channels
}

func pinOf(i int) string {
	return []string{"111111", "222222", "333333", "444444", "555555"}[i]
}

func (h *harness) group(t *testing.T, creator chat.ParticipantID, members ...chat.ParticipantID) chat.Chat {
	t.Helper()
	c, err := h.chat.CreateChat(context.Background(), chat.CreateChatCommand{
		Name:      "group",
		CreatorID: creator,
		Members:   members,
	})
	require.NoError(t, err)
	return c
}

// trackedClocks counts the chats with a post in progress.
func (s *ChatService) trackedClocks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chatMu)
}
