package repositories

import (
	"chat-sync/contract"
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

var _ contract.ParticipantStore = ParticipantRepository{}

// ParticipantRepository stores profiles under "participant:{id}" with two
// lookup indexes: "pin:{pin}" for contact discovery and "name:{name}" for login.
// Names are indexed case-insensitively.
type ParticipantRepository struct {
	db *badger.DB
}

func NewParticipantRepository(db *badger.DB) ParticipantRepository {
	return ParticipantRepository{db: db}
}

func participantKey(id chat.ParticipantID) string { return fmt.Sprintf("participant:%s", id) }

func pinKey(pin string) string { return fmt.Sprintf("pin:%s", pin) }

func nameKey(name string) string { return fmt.Sprintf("name:%s", strings.ToLower(name)) }

// CreateParticipant fails with errors.ErrAlreadyExists when the id, the PIN or the name is taken.
func (r ParticipantRepository) CreateParticipant(_ context.Context, p chat.Participant) error {
	data, err := json.Marshal(diskParticipant{
		ID:           string(p.ID),
		Name:         p.Name,
		PIN:          p.PIN,
		PasswordHash: p.PasswordHash,
	})
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		keys := []string{participantKey(p.ID), pinKey(p.PIN), nameKey(p.Name)}
		for _, key := range keys {
			found, err := exists(txn, key)
			if err != nil {
				return err
			}
			if found {
				return fmt.Errorf("%s: %w", key, errors.ErrAlreadyExists)
			}
		}
		if err := txn.Set([]byte(participantKey(p.ID)), data); err != nil {
			return err
		}
		if err := txn.Set([]byte(pinKey(p.PIN)), []byte(p.ID)); err != nil {
			return err
		}
		return txn.Set([]byte(nameKey(p.Name)), []byte(p.ID))
	})
}

func (r ParticipantRepository) GetParticipant(_ context.Context, id chat.ParticipantID) (chat.Participant, error) {
	var p chat.Participant
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		p, err = loadParticipant(txn, id)
		return err
	})
	return p, err
}

func (r ParticipantRepository) FindByPIN(_ context.Context, pin string) (chat.Participant, error) {
	return r.findByIndex(pinKey(pin))
}

func (r ParticipantRepository) FindByName(_ context.Context, name string) (chat.Participant, error) {
	return r.findByIndex(nameKey(name))
}

func (r ParticipantRepository) findByIndex(key string) (chat.Participant, error) {
	var p chat.Participant
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%s: %w", key, errors.ErrNotFound)
		}
		if err != nil {
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		p, err = loadParticipant(txn, chat.ParticipantID(id))
		return err
	})
	return p, err
}

func loadParticipant(txn *badger.Txn, id chat.ParticipantID) (chat.Participant, error) {
	var record diskParticipant
	if err := getJSON(txn, participantKey(id), &record); err != nil {
		return chat.Participant{}, fmt.Errorf("participant %s: %w", id, err)
	}
	return chat.Participant{
		ID:           chat.ParticipantID(record.ID),
		Name:         record.Name,
		PIN:          record.PIN,
		PasswordHash: record.PasswordHash,
	}, nil
}
