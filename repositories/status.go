package repositories

import (
	"chat-sync/contract"
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

var _ contract.StatusStore = StatusRepository{}

// StatusRepository stores status posts under "status:{id}".
// Each entry carries a badger TTL past its expiry so that posts the
// expiry engine never purged are eventually garbage collected.
type StatusRepository struct {
	db    *badger.DB
	log   *slog.Logger
	grace time.Duration
	now   func() time.Time
}

const statusPrefix = "status:"

func NewStatusRepository(db *badger.DB, log *slog.Logger) StatusRepository {
	return StatusRepository{db: db, log: log, grace: time.Hour, now: time.Now}
}

func statusKey(id uuid.UUID) string { return statusPrefix + id.String() }

func (r StatusRepository) InsertStatus(_ context.Context, post chat.StatusPost) error {
	data, err := json.Marshal(fromStatus(post))
	if err != nil {
		return err
	}
	entry := badger.NewEntry([]byte(statusKey(post.ID)), data)
	if ttl := post.ExpiresAt.Add(r.grace).Sub(r.now()); ttl > 0 {
		entry = entry.WithTTL(ttl)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(entry)
	})
}

func (r StatusRepository) GetStatus(_ context.Context, id uuid.UUID) (chat.StatusPost, error) {
	var record diskStatus
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, statusKey(id), &record)
	})
	if err != nil {
		return chat.StatusPost{}, fmt.Errorf("status %s: %w", id, err)
	}
	return record.toStatus()
}

// ListStatuses returns every stored post, expired ones included.
// Visibility is decided by the expiry engine.
func (r StatusRepository) ListStatuses(_ context.Context) ([]chat.StatusPost, error) {
	var posts []chat.StatusPost
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(statusPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var record diskStatus
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			}); err != nil {
				return err
			}
			post, err := record.toStatus()
			if err != nil {
				return err
			}
			posts = append(posts, post)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	return posts, nil
}

// DeleteStatus removes a post. Deleting an unknown post returns errors.ErrNotFound.
func (r StatusRepository) DeleteStatus(_ context.Context, id uuid.UUID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		found, err := exists(txn, statusKey(id))
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("status %s: %w", id, errors.ErrNotFound)
		}
		return txn.Delete([]byte(statusKey(id)))
	})
}
