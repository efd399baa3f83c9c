package repositories

import (
	"chat-sync/errors"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// OpenBadger opens the database at path with badger's internal logs routed to log.
func OpenBadger(path string, log *slog.Logger) (*badger.DB, error) {
	db, err := badger.Open(BadgerOptions(path, log))
	if err != nil {
		return nil, fmt.Errorf("database opening failed: %w", err)
	}
	return db, nil
}

func BadgerOptions(path string, log *slog.Logger) badger.Options {
	options := badger.DefaultOptions(path).WithLogger(NewBadgerLogger(log))
	if log.Enabled(context.Background(), slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.INFO)
}

// BadgerLogger adapts slog to badger.Logger.
type BadgerLogger struct {
	log *slog.Logger
}

var _ badger.Logger = BadgerLogger{}

func NewBadgerLogger(log *slog.Logger) BadgerLogger {
	return BadgerLogger{log: log.With("component", "badger")}
}

func (b BadgerLogger) Errorf(format string, args ...interface{}) {
	b.log.Error(badgerLine(format, args...))
}

func (b BadgerLogger) Warningf(format string, args ...interface{}) {
	b.log.Warn(badgerLine(format, args...))
}

func (b BadgerLogger) Infof(format string, args ...interface{}) {
	b.log.Info(badgerLine(format, args...))
}

func (b BadgerLogger) Debugf(format string, args ...interface{}) {
	b.log.Debug(badgerLine(format, args...))
}

func badgerLine(format string, args ...interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}

// getJSON loads key into v, mapping a missing key to errors.ErrNotFound.
func getJSON(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return errors.ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func exists(txn *badger.Txn, key string) (bool, error) {
	_, err := txn.Get([]byte(key))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}
