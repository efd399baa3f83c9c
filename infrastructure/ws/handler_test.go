package ws

import (
	"chat-sync/contract"
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type tokenVerifier map[string]chat.ParticipantID

func (v tokenVerifier) Verify(token string) (chat.ParticipantID, error) {
	if id, ok := v[token]; ok {
		return id, nil
	}
	return "", errors.ErrUnauthorized
}

type fakeService struct {
	mu       sync.Mutex
	channels map[chat.ParticipantID]contract.Channel
	inbound  []string
	closed   []chat.ParticipantID
	reject   error
}

func newFakeService() *fakeService {
	return &fakeService{channels: make(map[chat.ParticipantID]contract.Channel)}
}

func (s *fakeService) OnConnectionOpened(_ context.Context, participantID chat.ParticipantID, channel contract.Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reject != nil {
		return s.reject
	}
	s.channels[participantID] = channel
	return nil
}

func (s *fakeService) OnConnectionClosed(participantID chat.ParticipantID, _ contract.Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = append(s.closed, participantID)
}

func (s *fakeService) OnInboundEvent(_ context.Context, _ chat.ParticipantID, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inbound = append(s.inbound, string(raw))
	if strings.Contains(string(raw), "bad") {
		return errors.ErrMalformedEvent
	}
	return nil
}

func (s *fakeService) channel(participantID chat.ParticipantID) (contract.Channel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.channels[participantID]
	return c, ok
}

func (s *fakeService) closedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.closed)
}

func (s *fakeService) inboundFrames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.inbound...)
}

func startServer(t *testing.T, service *fakeService) string {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	handler := NewHandler(log, service, tokenVerifier{"alice-token": "alice"}, 8)
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHandler_Rejects_Missing_Or_Invalid_Token(t *testing.T) {
	req := require.New(t)
	url := startServer(t, newFakeService())

	for _, query := range []string{"", "?token=forged"} {
		_, resp, err := websocket.DefaultDialer.Dial(url+query, nil)
		req.ErrorIs(err, websocket.ErrBadHandshake)
		req.Equal(http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestHandler_Delivers_Outbound_Payloads(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	conn := dial(t, startServer(t, service)+"?token=alice-token")

	// Given alice is bound to her connection
	var channel contract.Channel
	req.Eventually(func() bool {
		var ok bool
		channel, ok = service.channel("alice")
		return ok
	}, time.Second, 10*time.Millisecond)

	// When the core pushes two payloads
	req.True(channel.Send([]byte(`{"type":"message","data":{"content":"one"}}`)))
	req.True(channel.Send([]byte(`{"type":"message","data":{"content":"two"}}`)))

	// Then the client reads them in order
	for _, want := range []string{"one", "two"} {
		_, raw, err := conn.ReadMessage()
		req.NoError(err)
		req.Contains(string(raw), want)
	}
}

func TestHandler_Inbound_Errors_Are_Reported_On_The_Socket(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	conn := dial(t, startServer(t, service)+"?token=alice-token")

	req.NoError(conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"typing","chatId":"c1","isTyping":true}`)))
	req.NoError(conn.WriteMessage(websocket.TextMessage, []byte(`bad frame`)))

	_, raw, err := conn.ReadMessage()
	req.NoError(err)
	var frame struct {
		Type string `json:"type"`
		Data struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	req.NoError(json.Unmarshal(raw, &frame))
	req.Equal("error", frame.Type)
	req.Contains(frame.Data.Message, errors.ErrMalformedEvent.Error())

	// The connection stays open after a malformed frame
	req.NoError(conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"typing","chatId":"c1","isTyping":false}`)))
	req.Eventually(func() bool { return len(service.inboundFrames()) == 3 }, time.Second, 10*time.Millisecond)
}

func TestHandler_Client_Disconnect_Unbinds_Participant(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	conn := dial(t, startServer(t, service)+"?token=alice-token")
	req.Eventually(func() bool {
		_, ok := service.channel("alice")
		return ok
	}, time.Second, 10*time.Millisecond)

	req.NoError(conn.Close())

	req.Eventually(func() bool { return service.closedCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestHandler_Server_Close_Ends_The_Socket(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	conn := dial(t, startServer(t, service)+"?token=alice-token")
	var channel contract.Channel
	req.Eventually(func() bool {
		var ok bool
		channel, ok = service.channel("alice")
		return ok
	}, time.Second, 10*time.Millisecond)

	// When the registry supersedes the connection
	req.True(channel.Send([]byte(`{"type":"message","data":{}}`)))
	req.NoError(channel.Close())

	// Then the queued payload is flushed before the close frame
	_, _, err := conn.ReadMessage()
	req.NoError(err)
	_, _, err = conn.ReadMessage()
	req.True(websocket.IsCloseError(err, websocket.CloseNormalClosure))
	req.False(channel.Send([]byte(`late`)))
}

func TestHandler_Rejected_Connection_Receives_Error(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	service.reject = errors.ErrUnauthorized
	conn := dial(t, startServer(t, service)+"?token=alice-token")

	_, raw, err := conn.ReadMessage()
	req.NoError(err)
	req.Contains(string(raw), `"type":"error"`)
	_, _, err = conn.ReadMessage()
	req.Error(err)
	req.Zero(service.closedCount())
}

func TestConnection_Send_Never_Blocks(t *testing.T) {
	req := require.New(t)
	conn := NewConnection(logs.GetLoggerFromLevel(slog.LevelDebug), nil, 1)

	req.True(conn.Send([]byte("first")))
	req.False(conn.Send([]byte("second")))

	req.NoError(conn.Close())
	req.NoError(conn.Close())
	req.False(conn.Send([]byte("third")))
	select {
	case <-conn.Done():
	default:
		req.Fail("connection should be done")
	}
}

func TestHandler_Shutdown_Closes_Live_Connections(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	handler := NewHandler(logs.GetLoggerFromLevel(slog.LevelDebug), service, tokenVerifier{"alice-token": "alice"}, 8)
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?token=alice-token"
	conn := dial(t, url)
	req.Eventually(func() bool {
		_, ok := service.channel("alice")
		return ok
	}, time.Second, 10*time.Millisecond)

	// When the server shuts down
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	req.NoError(handler.Shutdown(ctx))

	// Then alice's handler has already unbound her and the peer got a close frame
	req.Equal(1, service.closedCount())
	_, _, err := conn.ReadMessage()
	req.True(websocket.IsCloseError(err, websocket.CloseNormalClosure))

	// And late connections are turned away
	late, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		_, _, err = late.ReadMessage()
		_ = late.Close()
	}
	req.Error(err)
}
