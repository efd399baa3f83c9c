package auth

import (
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "chat-sync"

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	ParticipantID string `json:"participant_id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies participant tokens with HS256.
// The participant id it returns is the only identity the realtime core trusts.
type TokenIssuer struct {
	secret   []byte
	duration time.Duration
	now      func() time.Time
}

func NewTokenIssuer(secret string, duration time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), duration: duration, now: time.Now}
}

// Issue creates a signed token for participantID valid for the configured duration.
func (i *TokenIssuer) Issue(participantID chat.ParticipantID) (string, error) {
	now := i.now()
	claims := &CustomClaims{
		ParticipantID: string(participantID),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(participantID),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrTokenGeneration, err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, issuer and expiration of tokenString.
// Every failure is reported as errors.ErrUnauthorized.
func (i *TokenIssuer) Verify(tokenString string) (chat.ParticipantID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.ParticipantID == "" {
		return "", errors.ErrUnauthorized
	}
	return chat.ParticipantID(claims.ParticipantID), nil
}
