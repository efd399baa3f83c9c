package repositories

import (
	"chat-sync/contract"
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dgraph-io/badger/v4"
)

var _ contract.MessageStore = MessageRepository{}

type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) MessageRepository {
	return MessageRepository{db: db, log: log, limitMessages: limitMessages}
}

func messagePrefix(chatID chat.ChatID) string {
	return fmt.Sprintf("msg:%s:", chatID)
}

// InsertMessage persists a message in BadgerDB.
// The key is formatted as "msg:{chat_id}:{timestamp_padded}:{uuid}":
//  1. 19-digit zero padding keeps lexicographical order chronological.
//  2. The UUID breaks ties between messages created at the same nanosecond.
func (m MessageRepository) InsertMessage(_ context.Context, message chat.Message) error {
	key := fmt.Sprintf("%s%019d:%s",
		messagePrefix(message.ChatID),
		message.CreatedAt.UnixNano(),
		message.ID,
	)
	bytes, err := json.Marshal(fromMessage(message))
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// ListMessages returns one page of a chat history in chronological order.
// Without a cursor the newest page is returned. The next cursor points to the
// oldest message of the page and is nil once the beginning of the chat is reached.
func (m MessageRepository) ListMessages(_ context.Context, chatID chat.ChatID, cursor *string) ([]chat.Message, *string, error) {
	var messages []chat.Message
	var next *string
	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := messagePrefix(chatID)
		prefix := []byte(prefixStr)
		prefixLen := len(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration starts from the greatest key lower or equal to the seek key
		var seekKey []byte
		switch cursor {
		case nil:
			seekKey = append(slices.Clone(prefix), []byte("9999999999999999999")...)
		default:
			seekKey = append(slices.Clone(prefix), []byte(*cursor)...)
		}

		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) && string(it.Item().Key()[prefixLen:]) == *cursor {
			it.Next()
		}

		var lastKey string
		for ; it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(messages) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d message reached", *m.limitMessages))
				next = &lastKey
				break
			}
			item := it.Item()
			lastKey = string(item.KeyCopy(nil)[prefixLen:])
			var record diskMessage
			if err := item.Value(func(value []byte) error {
				return json.Unmarshal(value, &record)
			}); err != nil {
				return err
			}
			message, err := record.toMessage()
			if err != nil {
				return err
			}
			messages = append(messages, message)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("list messages of chat %s: %w", chatID, err)
	}

	slices.Reverse(messages)
	return messages, next, nil
}

// LastMessage returns the newest message of a chat.
func (m MessageRepository) LastMessage(_ context.Context, chatID chat.ChatID) (chat.Message, error) {
	var message chat.Message
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(messagePrefix(chatID))
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		options.PrefetchSize = 1
		it := txn.NewIterator(options)
		defer it.Close()

		it.Seek(append(slices.Clone(prefix), []byte("9999999999999999999")...))
		if !it.ValidForPrefix(prefix) {
			return errors.ErrNotFound
		}
		var record diskMessage
		if err := it.Item().Value(func(value []byte) error {
			return json.Unmarshal(value, &record)
		}); err != nil {
			return err
		}
		var err error
		message, err = record.toMessage()
		return err
	})
	if err != nil {
		return chat.Message{}, fmt.Errorf("last message of chat %s: %w", chatID, err)
	}
	return message, nil
}
