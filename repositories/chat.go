package repositories

import (
	"chat-sync/contract"
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dgraph-io/badger/v4"
)

var _ contract.ChatStore = ChatRepository{}

// ChatRepository stores chats under "chat:{id}" and keeps a
// "member:{participant_id}:{chat_id}" index for listing a participant's chats.
type ChatRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewChatRepository(db *badger.DB, log *slog.Logger) ChatRepository {
	return ChatRepository{db: db, log: log}
}

func chatKey(chatID chat.ChatID) string { return fmt.Sprintf("chat:%s", chatID) }

func memberKey(participantID chat.ParticipantID, chatID chat.ChatID) string {
	return fmt.Sprintf("member:%s:%s", participantID, chatID)
}

func (r ChatRepository) CreateChat(_ context.Context, c chat.Chat) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(fromChat(c))
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		found, err := exists(txn, chatKey(c.ID))
		if err != nil {
			return err
		}
		if found {
			return fmt.Errorf("chat %s: %w", c.ID, errors.ErrAlreadyExists)
		}
		if err := txn.Set([]byte(chatKey(c.ID)), data); err != nil {
			return err
		}
		for _, member := range c.Members {
			if err := txn.Set([]byte(memberKey(member, c.ID)), nil); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r ChatRepository) GetChat(_ context.Context, chatID chat.ChatID) (chat.Chat, error) {
	var c chat.Chat
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		c, err = loadChat(txn, chatID)
		return err
	})
	return c, err
}

func (r ChatRepository) GetChatMembers(ctx context.Context, chatID chat.ChatID) ([]chat.ParticipantID, error) {
	c, err := r.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return c.Members, nil
}

// AddChatMember appends participantID to the ordered member set.
// Adding an existing member returns the chat unchanged.
func (r ChatRepository) AddChatMember(_ context.Context, chatID chat.ChatID, participantID chat.ParticipantID) (chat.Chat, error) {
	var updated chat.Chat
	err := r.db.Update(func(txn *badger.Txn) error {
		current, err := loadChat(txn, chatID)
		if err != nil {
			return err
		}
		updated, err = current.WithMember(participantID)
		if err != nil || len(updated.Members) == len(current.Members) {
			return err
		}
		data, err := json.Marshal(fromChat(updated))
		if err != nil {
			return err
		}
		if err := txn.Set([]byte(chatKey(chatID)), data); err != nil {
			return err
		}
		return txn.Set([]byte(memberKey(participantID, chatID)), nil)
	})
	if err != nil {
		return chat.Chat{}, err
	}
	r.log.Debug("Member added", "chat_id", chatID, "participant_id", participantID)
	return updated, nil
}

// ListChatsFor returns the chats participantID belongs to, oldest first.
func (r ChatRepository) ListChatsFor(_ context.Context, participantID chat.ParticipantID) ([]chat.Chat, error) {
	var chats []chat.Chat
	err := r.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("member:%s:", participantID)
		prefix := []byte(prefixStr)
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		var ids []chat.ChatID
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, chat.ChatID(it.Item().KeyCopy(nil)[len(prefixStr):]))
		}
		for _, id := range ids {
			c, err := loadChat(txn, id)
			if errors.Is(err, errors.ErrNotFound) {
				r.log.Warn("Dangling membership index", "chat_id", id, "participant_id", participantID)
				continue
			}
			if err != nil {
				return err
			}
			chats = append(chats, c)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list chats of %s: %w", participantID, err)
	}
	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].CreatedAt.Before(chats[j].CreatedAt)
	})
	return chats, nil
}

func loadChat(txn *badger.Txn, chatID chat.ChatID) (chat.Chat, error) {
	var record diskChat
	if err := getJSON(txn, chatKey(chatID), &record); err != nil {
		return chat.Chat{}, fmt.Errorf("chat %s: %w", chatID, err)
	}
	return record.toChat(), nil
}
