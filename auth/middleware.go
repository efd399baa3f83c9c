package auth

import (
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"context"
	"net/http"
	"strings"
)

type contextKey string

const ParticipantIDKey contextKey = "participant_id"

// Verifier resolves a bearer token to a participant id.
type Verifier interface {
	Verify(token string) (chat.ParticipantID, error)
}

// Middleware rejects requests without a valid "Authorization: Bearer <token>"
// header and injects the verified participant id into the request context.
func Middleware(verifier Verifier, onError func(w http.ResponseWriter, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenStr == "" {
				onError(w, errors.ErrUnauthorized)
				return
			}
			participantID, err := verifier.Verify(tokenStr)
			if err != nil {
				onError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithParticipant(r.Context(), participantID)))
		})
	}
}

func WithParticipant(ctx context.Context, participantID chat.ParticipantID) context.Context {
	return context.WithValue(ctx, ParticipantIDKey, participantID)
}

// ParticipantFrom returns the identity injected by Middleware.
func ParticipantFrom(ctx context.Context) (chat.ParticipantID, bool) {
	participantID, ok := ctx.Value(ParticipantIDKey).(chat.ParticipantID)
	return participantID, ok && participantID != ""
}
