package repositories

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBadgerLogger_Routes_To_Slog(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger := NewBadgerLogger(log)
	logger.Warningf("compaction took %d ms\n", 42)

	req.Contains(buf.String(), "level=WARN")
	req.Contains(buf.String(), `msg="compaction took 42 ms"`)
	req.Contains(buf.String(), "component=badger")
}

func TestOpenBadger(t *testing.T) {
	req := require.New(t)
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	db, err := OpenBadger(t.TempDir(), log)
	req.NoError(err)
	req.NoError(db.Close())
}
