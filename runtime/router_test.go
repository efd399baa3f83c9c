package runtime

import (
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"chat-sync/observability"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, members staticResolver) (*Router, *Registry, *observability.DeliveryStats) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry(log)
	stats := observability.NewDeliveryStats()
	return NewRouter(log, registry, members, stats), registry, stats
}

func connect(t *testing.T, registry *Registry, ids ...chat.ParticipantID) map[chat.ParticipantID]*recordingChannel {
	t.Helper()
	channels := make(map[chat.ParticipantID]*recordingChannel, len(ids))
	for _, id := range ids {
		c := &recordingChannel{}
		_, err := registry.Register(id, c)
		require.NoError(t, err)
		channels[id] = c
	}
	return channels
}

func newMessage(chatID chat.ChatID, sender chat.ParticipantID, content string) chat.Message {
	return chat.Message{
		ID:        uuid.New(),
		ChatID:    chatID,
		SenderID:  sender,
		Content:   content,
		Type:      chat.MessageText,
		CreatedAt: time.Now().UTC(),
	}
}

func TestRouter_PublishMessage_Reaches_Every_Member_Including_Sender(t *testing.T) {
	req := require.New(t)
	router, registry, stats := newTestRouter(t, staticResolver{"c1": {"alice", "bob", "carol"}})
	channels := connect(t, registry, "alice", "bob", "carol", "dave")

	// When alice publishes in c1
	message := newMessage("c1", "alice", "hi")
	report, err := router.PublishMessage(context.Background(), message)

	// Then the three members, alice included, receive it exactly once
	req.NoError(err)
	req.Equal(3, report.Audience)
	req.Equal(3, report.Delivered)
	req.Zero(report.Missed)
	for _, id := range []chat.ParticipantID{"alice", "bob", "carol"} {
		received := channels[id].messages()
		req.Len(received, 1)
		req.Equal(message.ID.String(), received[0].ID)
		req.Equal("c1", received[0].ChatID)
		req.Equal("alice", received[0].SenderID)
		req.Equal("hi", received[0].Content)
	}

	// And a non member receives nothing
	req.Empty(channels["dave"].frames())
	req.Equal(uint64(1), stats.Snapshot().Published)
}

func TestRouter_PublishMessage_Counts_Offline_Members_As_Missed(t *testing.T) {
	req := require.New(t)
	router, registry, stats := newTestRouter(t, staticResolver{"c1": {"alice", "bob", "carol"}})
	channels := connect(t, registry, "alice", "bob")

	// Given carol is offline
	report, err := router.PublishMessage(context.Background(), newMessage("c1", "alice", "hi"))

	// Then the fan-out still succeeds for the others
	req.NoError(err)
	req.Equal(2, report.Delivered)
	req.Equal(1, report.Missed)
	req.Len(channels["bob"].messages(), 1)
	req.Equal(uint64(1), stats.Snapshot().Missed)
}

func TestRouter_PublishMessage_Full_Outbox_Does_Not_Stall_Others(t *testing.T) {
	req := require.New(t)
	router, registry, _ := newTestRouter(t, staticResolver{"c1": {"alice", "bob", "carol"}})
	channels := connect(t, registry, "alice", "carol")
	slow := &recordingChannel{full: true}
	_, err := registry.Register("bob", slow)
	req.NoError(err)

	report, err := router.PublishMessage(context.Background(), newMessage("c1", "alice", "hi"))

	req.NoError(err)
	req.Equal(1, report.Missed)
	req.Len(channels["carol"].messages(), 1)
}

func TestRouter_PublishMessage_Keeps_Per_Chat_Order(t *testing.T) {
	req := require.New(t)
	router, registry, _ := newTestRouter(t, staticResolver{"c1": {"alice", "bob"}})
	channels := connect(t, registry, "alice", "bob")

	// When fifty messages are published in order
	var sent []string
	for i := range 50 {
		message := newMessage("c1", "alice", fmt.Sprintf("m%d", i))
		sent = append(sent, message.Content)
		_, err := router.PublishMessage(context.Background(), message)
		req.NoError(err)
	}

	// Then every member observes the same order
	for _, id := range []chat.ParticipantID{"alice", "bob"} {
		var got []string
		for _, m := range channels[id].messages() {
			got = append(got, m.Content)
		}
		req.Equal(sent, got)
	}
}

func TestRouter_PublishMessage_Unknown_Chat(t *testing.T) {
	req := require.New(t)
	router, registry, _ := newTestRouter(t, staticResolver{})
	channels := connect(t, registry, "alice")

	_, err := router.PublishMessage(context.Background(), newMessage("ghost", "alice", "hi"))

	req.ErrorIs(err, errors.ErrNotFound)
	req.Empty(channels["alice"].frames())
}

func TestRouter_PublishTyping_Excludes_Originator(t *testing.T) {
	req := require.New(t)
	router, registry, stats := newTestRouter(t, staticResolver{"c1": {"alice", "bob", "carol"}})
	channels := connect(t, registry, "alice", "bob", "carol")

	report, err := router.PublishTyping(context.Background(), "c1", "alice", true)

	req.NoError(err)
	req.Equal(2, report.Audience)
	req.Empty(channels["alice"].frames())
	for _, id := range []chat.ParticipantID{"bob", "carol"} {
		received := channels[id].typing()
		req.Len(received, 1)
		req.Equal(typingFrame{ChatID: "c1", UserID: "alice", IsTyping: true}, received[0])
	}
	req.Equal(uint64(1), stats.Snapshot().Typing)
}
