package runtime

import (
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

type frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type messageFrame struct {
	ID       string `json:"id"`
	ChatID   string `json:"chatId"`
	SenderID string `json:"senderId"`
	Content  string `json:"content"`
}

type typingFrame struct {
	ChatID   string `json:"chatId"`
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

// recordingChannel keeps every payload it accepts.
type recordingChannel struct {
	mu       sync.Mutex
	payloads [][]byte
	closed   bool
	full     bool
}

func (c *recordingChannel) Send(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.full {
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

func (c *recordingChannel) frames() []frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	frames := make([]frame, 0, len(c.payloads))
	for _, p := range c.payloads {
		var f frame
		if err := json.Unmarshal(p, &f); err == nil {
			frames = append(frames, f)
		}
	}
	return frames
}

func (c *recordingChannel) messages() []messageFrame {
	var res []messageFrame
	for _, f := range c.frames() {
		if f.Type != "message" {
			continue
		}
		var m messageFrame
		_ = json.Unmarshal(f.Data, &m)
		res = append(res, m)
	}
	return res
}

func (c *recordingChannel) typing() []typingFrame {
	var res []typingFrame
	for _, f := range c.frames() {
		if f.Type != "typing" {
			continue
		}
		var t typingFrame
		_ = json.Unmarshal(f.Data, &t)
		res = append(res, t)
	}
	return res
}

// staticResolver serves a fixed membership table.
type staticResolver map[chat.ChatID][]chat.ParticipantID

func (s staticResolver) MembersOf(_ context.Context, chatID chat.ChatID) ([]chat.ParticipantID, error) {
	members, ok := s[chatID]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return members, nil
}

func (s staticResolver) Invalidate(chat.ChatID) {}

// fakeClock only moves when told to.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock { return &fakeClock{now: now} }

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

// memoryStatusStore is an in-memory StatusStore.
type memoryStatusStore struct {
	mu      sync.Mutex
	posts   map[uuid.UUID]chat.StatusPost
	deletes int
}

func newMemoryStatusStore(posts ...chat.StatusPost) *memoryStatusStore {
	s := &memoryStatusStore{posts: make(map[uuid.UUID]chat.StatusPost)}
	for _, p := range posts {
		s.posts[p.ID] = p
	}
	return s
}

func (s *memoryStatusStore) InsertStatus(_ context.Context, post chat.StatusPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.ID] = post
	return nil
}

func (s *memoryStatusStore) GetStatus(_ context.Context, id uuid.UUID) (chat.StatusPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return chat.StatusPost{}, errors.ErrNotFound
	}
	return post, nil
}

func (s *memoryStatusStore) ListStatuses(context.Context) ([]chat.StatusPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]chat.StatusPost, 0, len(s.posts))
	for _, p := range s.posts {
		res = append(res, p)
	}
	return res, nil
}

func (s *memoryStatusStore) DeleteStatus(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return errors.ErrNotFound
	}
	delete(s.posts, id)
	s.deletes++
	return nil
}

func (s *memoryStatusStore) has(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.posts[id]
	return ok
}
