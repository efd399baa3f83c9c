package ws

import (
	"chat-sync/auth"
	"chat-sync/contract"
	"chat-sync/domain/chat"
	"chat-sync/domain/event"
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Service is the part of the chat service a websocket connection drives.
type Service interface {
	OnConnectionOpened(ctx context.Context, participantID chat.ParticipantID, channel contract.Channel) error
	OnConnectionClosed(participantID chat.ParticipantID, channel contract.Channel)
	OnInboundEvent(ctx context.Context, participantID chat.ParticipantID, raw []byte) error
}

type Handler struct {
	log          *slog.Logger
	service      Service
	verifier     auth.Verifier
	upgrader     websocket.Upgrader
	bufferSize   int
	eventTimeout time.Duration

	mu      sync.Mutex
	live    map[*Connection]struct{}
	serving sync.WaitGroup
	closing bool
}

func NewHandler(log *slog.Logger, service Service, verifier auth.Verifier, bufferSize int) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		verifier: verifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		bufferSize:   bufferSize,
		eventTimeout: 10 * time.Second,
		live:         make(map[*Connection]struct{}),
	}
}

// ServeHTTP authenticates "?token=" before upgrading, then binds the socket
// to the participant until either side closes it.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	participantID, err := h.verifier.Verify(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	socket, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", "participant_id", participantID, "error", err)
		return
	}
	log := h.log.With("participant_id", participantID)
	conn := NewConnection(log, socket, h.bufferSize)
	go conn.writeLoop()
	if !h.track(conn) {
		_ = conn.Close()
		return
	}
	defer h.untrack(conn)

	if err := h.service.OnConnectionOpened(r.Context(), participantID, conn); err != nil {
		log.Warn("Connection rejected", "error", err)
		h.sendError(conn, err)
		_ = conn.Close()
		return
	}
	defer func() {
		_ = conn.Close()
		h.service.OnConnectionClosed(participantID, conn)
	}()

	conn.readLoop(func(raw []byte) {
		ctx, cancel := context.WithTimeout(context.Background(), h.eventTimeout)
		defer cancel()
		if err := h.service.OnInboundEvent(ctx, participantID, raw); err != nil {
			log.Debug("Inbound event rejected", "error", err)
			h.sendError(conn, err)
		}
	})
}

// Shutdown closes every live connection and waits until their handlers have
// returned. http.Server.Shutdown does not track hijacked connections, so the
// caller runs both.
func (h *Handler) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	h.closing = true
	for conn := range h.live {
		_ = conn.Close()
	}
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.serving.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Handler) track(conn *Connection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closing {
		return false
	}
	h.live[conn] = struct{}{}
	h.serving.Add(1)
	return true
}

func (h *Handler) untrack(conn *Connection) {
	h.mu.Lock()
	delete(h.live, conn)
	h.mu.Unlock()
	h.serving.Done()
}

func (h *Handler) sendError(conn *Connection, err error) {
	payload, encodeErr := event.NewErrorEvent(err).Encode()
	if encodeErr != nil {
		h.log.Error("Encoding error event failed", "error", encodeErr)
		return
	}
	conn.Send(payload)
}
