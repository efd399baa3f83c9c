package services

import (
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStatusService_PostStatus_Validation(t *testing.T) {
	h := newHarness(t)
	h.join(t, "alice")

	tests := []struct {
		name string
		cmd  chat.PostStatusCommand
		err  error
	}{
		{"empty post", chat.PostStatusCommand{Content: "  "}, errors.ErrInvalidStatus},
		{"too long", chat.PostStatusCommand{Content: string(make([]byte, maxStatusLength+1))}, errors.ErrInvalidStatus},
		{"image only", chat.PostStatusCommand{ImageURL: "https://cdn/x.png"}, nil},
		{"text only", chat.PostStatusCommand{Content: "hello"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cmd.AuthorID = "alice"
			_, err := h.status.PostStatus(context.Background(), tt.cmd)
			if tt.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestStatusService_Active_Statuses_Newest_First_With_Author(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	ctx := context.Background()
	h.join(t, "alice", "bob")

	// Given two posts an hour apart
	first, err := h.status.PostStatus(ctx, chat.PostStatusCommand{AuthorID: "alice", Content: "morning"})
	req.NoError(err)
	h.clock.Advance(time.Hour)
	second, err := h.status.PostStatus(ctx, chat.PostStatusCommand{AuthorID: "bob", Content: "coffee"})
	req.NoError(err)

	// When listing
	views, err := h.status.ListActiveStatuses(ctx)
	req.NoError(err)

	// Then the newest comes first, each with its author's name
	req.Len(views, 2)
	req.Equal(second.ID, views[0].Post.ID)
	req.Equal("bob", views[0].AuthorName)
	req.Equal(first.ID, views[1].Post.ID)
	req.Equal("alice", views[1].AuthorName)
	req.Equal(first.CreatedAt.Add(24*time.Hour), first.ExpiresAt)
	req.Equal(2, h.expiry.Pending())
}

func TestStatusService_Expired_Post_Disappears(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	ctx := context.Background()
	h.join(t, "alice")

	post, err := h.status.PostStatus(ctx, chat.PostStatusCommand{AuthorID: "alice", Content: "soon gone"})
	req.NoError(err)

	// Just before the boundary the post is still visible
	h.clock.Advance(24*time.Hour - time.Minute)
	views, err := h.status.ListActiveStatuses(ctx)
	req.NoError(err)
	req.Len(views, 1)

	// At the boundary it is hidden even before the purge runs
	h.clock.Advance(time.Minute)
	views, err = h.status.ListActiveStatuses(ctx)
	req.NoError(err)
	req.Empty(views)

	// And the purge removes it from the store
	req.Equal(1, h.scheduler.FireDue())
	h.expiry.Wait()
	_, err = h.statuses.GetStatus(ctx, post.ID)
	req.ErrorIs(err, errors.ErrNotFound)
	req.Zero(h.expiry.Pending())
}

func TestStatusService_Unknown_Author_Has_Empty_Name(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.status.PostStatus(ctx, chat.PostStatusCommand{AuthorID: "ghost", Content: "boo"})
	req.NoError(err)

	views, err := h.status.ListActiveStatuses(ctx)
	req.NoError(err)
	req.Len(views, 1)
	req.Empty(views[0].AuthorName)
}
