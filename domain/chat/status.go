package chat

import (
	"time"

	"github.com/google/uuid"
)

const DefaultStatusTTL = 24 * time.Hour

// StatusPost is an ephemeral post, readable strictly before ExpiresAt.
type StatusPost struct {
	ID        uuid.UUID
	AuthorID  ParticipantID
	Content   string
	ImageURL  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func NewStatusPost(authorID ParticipantID, content, imageURL string, now time.Time, ttl time.Duration) StatusPost {
	return StatusPost{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Content:   content,
		ImageURL:  imageURL,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// ExpiryFor recomputes the expiry boundary from the stored creation time.
func (s StatusPost) ExpiryFor(ttl time.Duration) time.Time {
	return s.CreatedAt.Add(ttl)
}

// VisibleAt reports whether the post is readable at now for the given ttl.
func (s StatusPost) VisibleAt(now time.Time, ttl time.Duration) bool {
	return now.Before(s.ExpiryFor(ttl))
}
