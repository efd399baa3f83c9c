package services

import (
	"chat-sync/auth"
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"chat-sync/mocks"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	mockRepo := mocks.NewMockParticipantStore(ctrl)
	issuer := auth.NewTokenIssuer("a-long-enough-test-secret", 24*time.Hour)
	svc := NewAuthService(log, mockRepo, issuer)
	ctx := context.Background()

	t.Run("should register successfully when input is valid", func(t *testing.T) {
		req := require.New(t)
		var created chat.Participant

		mockRepo.EXPECT().FindByName(gomock.Any(), "alice").Return(chat.Participant{}, errors.ErrNotFound)
		mockRepo.EXPECT().FindByPIN(gomock.Any(), gomock.Any()).Return(chat.Participant{}, errors.ErrNotFound)
		// The repository receives a hash, never the plain password
		mockRepo.EXPECT().CreateParticipant(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p chat.Participant) error {
				created = p
				return nil
			}).Times(1)

		token, participant, err := svc.Register(ctx, "alice", "ComplexPass123!")

		req.NoError(err)
		req.Equal(created, participant)
		req.Len(participant.PIN, 6)
		req.NotEqual("ComplexPass123!", participant.PasswordHash)
		participantID, err := issuer.Verify(string(token))
		req.NoError(err)
		req.Equal(participant.ID, participantID)
	})

	t.Run("should fail when password complexity is not met", func(t *testing.T) {
		req := require.New(t)

		// Repository should never be called
		mockRepo.EXPECT().CreateParticipant(gomock.Any(), gomock.Any()).Times(0)

		token, _, err := svc.Register(ctx, "alice", "simplepassword")

		req.ErrorIs(err, errors.ErrInvalidPassword)
		req.Empty(token)
	})

	t.Run("should fail when name is taken", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().FindByName(gomock.Any(), "bob").Return(chat.Participant{ID: "bob"}, nil)
		mockRepo.EXPECT().CreateParticipant(gomock.Any(), gomock.Any()).Times(0)

		_, _, err := svc.Register(ctx, "bob", "ComplexPass123!")

		req.ErrorIs(err, errors.ErrAlreadyExists)
	})

	t.Run("should retry when the drawn pin is taken", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().FindByName(gomock.Any(), "carol").Return(chat.Participant{}, errors.ErrNotFound)
		gomock.InOrder(
			mockRepo.EXPECT().FindByPIN(gomock.Any(), gomock.Any()).Return(chat.Participant{ID: "someone"}, nil),
			mockRepo.EXPECT().FindByPIN(gomock.Any(), gomock.Any()).Return(chat.Participant{}, errors.ErrNotFound),
		)
		mockRepo.EXPECT().CreateParticipant(gomock.Any(), gomock.Any()).Return(nil)

		_, _, err := svc.Register(ctx, "carol", "ComplexPass123!")

		req.NoError(err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	mockRepo := mocks.NewMockParticipantStore(ctrl)
	issuer := auth.NewTokenIssuer("a-long-enough-test-secret", 24*time.Hour)
	svc := NewAuthService(log, mockRepo, issuer)
	ctx := context.Background()

	hashedPassword, err := auth.HashPassword("Secret123456!")
	require.NoError(t, err)
	stored := chat.Participant{ID: "uuid-123", Name: "alice", PIN: "123456", PasswordHash: hashedPassword}

	t.Run("should login successfully with correct credentials", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().FindByName(gomock.Any(), "alice").Return(stored, nil).Times(1)

		token, err := svc.Login(ctx, "alice", "Secret123456!")

		req.NoError(err)
		participantID, err := svc.Verify(string(token))
		req.NoError(err)
		req.Equal(stored.ID, participantID)
	})

	t.Run("should return invalid credentials when password matches nothing", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().FindByName(gomock.Any(), "alice").Return(stored, nil).Times(1)

		_, err := svc.Login(ctx, "alice", "WrongPassword123!")

		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})

	t.Run("should return invalid credentials when user is not found", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().FindByName(gomock.Any(), "unknown").Return(chat.Participant{}, errors.ErrNotFound).Times(1)

		_, err := svc.Login(ctx, "unknown", "anyPassword")

		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})
}
