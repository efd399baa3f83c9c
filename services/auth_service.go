package services

import (
	"chat-sync/auth"
	"chat-sync/contract"
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/google/uuid"
)

type IAuthService interface {
	Login(ctx context.Context, name, password string) (Token, error)
	Register(ctx context.Context, name, password string) (Token, chat.Participant, error)
	Verify(token string) (chat.ParticipantID, error)
}

type Token string

type AuthService struct {
	log          *slog.Logger
	participants contract.ParticipantStore
	issuer       *auth.TokenIssuer
}

const pinAttempts = 5

func NewAuthService(log *slog.Logger, participants contract.ParticipantStore, issuer *auth.TokenIssuer) *AuthService {
	return &AuthService{log: log, participants: participants, issuer: issuer}
}

// Register creates a participant with a fresh contact PIN and returns its first token.
func (s *AuthService) Register(ctx context.Context, name, password string) (Token, chat.Participant, error) {
	// Business rules are checked before any expensive cryptographic operation
	if err := auth.ValidateRegister(auth.RegisterRequest{Name: name, Password: password}); err != nil {
		return "", chat.Participant{}, err
	}
	if _, err := s.participants.FindByName(ctx, name); err == nil {
		return "", chat.Participant{}, fmt.Errorf("name %s: %w", name, errors.ErrAlreadyExists)
	} else if !errors.Is(err, errors.ErrNotFound) {
		return "", chat.Participant{}, err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return "", chat.Participant{}, fmt.Errorf("hashing failed: %w", err)
	}
	pin, err := s.freePIN(ctx)
	if err != nil {
		return "", chat.Participant{}, err
	}

	participant := chat.Participant{
		ID:           chat.ParticipantID(uuid.NewString()),
		Name:         name,
		PIN:          pin,
		PasswordHash: hashedPassword,
	}
	if err := s.participants.CreateParticipant(ctx, participant); err != nil {
		return "", chat.Participant{}, err
	}

	token, err := s.issuer.Issue(participant.ID)
	if err != nil {
		return "", chat.Participant{}, err
	}
	s.log.Info("Participant registered", "participant_id", participant.ID)
	return Token(token), participant, nil
}

func (s *AuthService) Login(ctx context.Context, name, password string) (Token, error) {
	participant, err := s.participants.FindByName(ctx, name)
	if err != nil {
		// Same error for unknown names and wrong passwords
		return "", errors.ErrInvalidCredentials
	}
	match, err := auth.ComparePassword(password, participant.PasswordHash)
	if err != nil || !match {
		return "", errors.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(participant.ID)
	if err != nil {
		return "", err
	}
	return Token(token), nil
}

func (s *AuthService) Verify(token string) (chat.ParticipantID, error) {
	return s.issuer.Verify(token)
}

// freePIN draws random 6-digit PINs until one is unused.
func (s *AuthService) freePIN(ctx context.Context) (string, error) {
	for range pinAttempts {
		n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
		if err != nil {
			return "", err
		}
		pin := fmt.Sprintf("%06d", n.Int64())
		_, err = s.participants.FindByPIN(ctx, pin)
		if errors.Is(err, errors.ErrNotFound) {
			return pin, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("no free pin after %d attempts: %w", pinAttempts, errors.ErrAlreadyExists)
}
