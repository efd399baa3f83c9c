package repositories

import (
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestStatusRepository_Insert_Get_Delete(t *testing.T) {
	req := require.New(t)
	repository := NewStatusRepository(openTestDB(t), logs.GetLoggerFromLevel(slog.LevelDebug))
	ctx := context.Background()
	post := chat.NewStatusPost("alice", "at the beach", "https://img/1.png", time.Now().UTC(), chat.DefaultStatusTTL)

	req.NoError(repository.InsertStatus(ctx, post))

	fetched, err := repository.GetStatus(ctx, post.ID)
	req.NoError(err)
	req.Equal(post.ID, fetched.ID)
	req.Equal(post.AuthorID, fetched.AuthorID)
	req.Equal(post.ImageURL, fetched.ImageURL)
	req.True(post.CreatedAt.Equal(fetched.CreatedAt))
	req.True(post.ExpiresAt.Equal(fetched.ExpiresAt))

	// Deleting is not idempotent at the store level
	req.NoError(repository.DeleteStatus(ctx, post.ID))
	req.ErrorIs(repository.DeleteStatus(ctx, post.ID), errors.ErrNotFound)
	_, err = repository.GetStatus(ctx, post.ID)
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestStatusRepository_Lists_Expired_Posts_Within_Grace(t *testing.T) {
	req := require.New(t)
	repository := NewStatusRepository(openTestDB(t), logs.GetLoggerFromLevel(slog.LevelDebug))
	ctx := context.Background()
	now := time.Now().UTC()

	// Given a live post and one that expired a minute ago
	live := chat.NewStatusPost("alice", "live", "", now, chat.DefaultStatusTTL)
	expired := chat.NewStatusPost("bob", "old", "", now.Add(-chat.DefaultStatusTTL-time.Minute), chat.DefaultStatusTTL)
	req.NoError(repository.InsertStatus(ctx, live))
	req.NoError(repository.InsertStatus(ctx, expired))

	// Then both are still returned so the expiry engine can purge the old one
	posts, err := repository.ListStatuses(ctx)
	req.NoError(err)
	req.Len(posts, 2)
}

func TestStatusRepository_Unknown_Post(t *testing.T) {
	req := require.New(t)
	repository := NewStatusRepository(openTestDB(t), logs.GetLoggerFromLevel(slog.LevelDebug))

	_, err := repository.GetStatus(context.Background(), uuid.New())

	req.ErrorIs(err, errors.ErrNotFound)
}
