package services

import (
	"chat-sync/contract"
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"
)

type IStatusService interface {
	PostStatus(ctx context.Context, cmd chat.PostStatusCommand) (chat.StatusPost, error)
	ListActiveStatuses(ctx context.Context) ([]StatusView, error)
}

const maxStatusLength = 1000

// StatusView is an active post joined with its author's display name.
type StatusView struct {
	Post       chat.StatusPost
	AuthorName string
}

type StatusService struct {
	log          *slog.Logger
	statuses     contract.StatusStore
	participants contract.ParticipantStore
	expiry       contract.IExpiryEngine
	now          func() time.Time
}

func NewStatusService(log *slog.Logger, statuses contract.StatusStore,
	participants contract.ParticipantStore, expiry contract.IExpiryEngine) *StatusService {
	return &StatusService{
		log:          log,
		statuses:     statuses,
		participants: participants,
		expiry:       expiry,
		now:          time.Now,
	}
}

// PostStatus stores a new post and schedules its expiry.
func (s *StatusService) PostStatus(ctx context.Context, cmd chat.PostStatusCommand) (chat.StatusPost, error) {
	content := strings.TrimSpace(cmd.Content)
	imageURL := strings.TrimSpace(cmd.ImageURL)
	if content == "" && imageURL == "" {
		return chat.StatusPost{}, fmt.Errorf("%w: content or imageUrl is required", errors.ErrInvalidStatus)
	}
	if len(content) > maxStatusLength {
		return chat.StatusPost{}, fmt.Errorf("%w: content exceeds %d bytes", errors.ErrInvalidStatus, maxStatusLength)
	}

	post := chat.NewStatusPost(cmd.AuthorID, content, imageURL, s.now().UTC(), s.expiry.TTL())
	if err := s.statuses.InsertStatus(ctx, post); err != nil {
		return chat.StatusPost{}, fmt.Errorf("insert status: %w", err)
	}
	s.expiry.Track(post)
	s.log.Debug("Status posted", "status_id", post.ID, "author_id", post.AuthorID, "expires_at", post.ExpiresAt)
	return post, nil
}

// ListActiveStatuses returns the posts visible now, newest first.
func (s *StatusService) ListActiveStatuses(ctx context.Context) ([]StatusView, error) {
	posts, err := s.expiry.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[chat.ParticipantID]string)
	for _, authorID := range lo.Uniq(lo.Map(posts, func(p chat.StatusPost, _ int) chat.ParticipantID {
		return p.AuthorID
	})) {
		author, err := s.participants.GetParticipant(ctx, authorID)
		if err != nil {
			s.log.Debug("Status author unavailable", "author_id", authorID, "error", err)
			continue
		}
		names[authorID] = author.Name
	}

	return lo.Map(posts, func(p chat.StatusPost, _ int) StatusView {
		return StatusView{Post: p, AuthorName: names[p.AuthorID]}
	}), nil
}
