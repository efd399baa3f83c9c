package workers

import (
	"bytes"
	"chat-sync/observability"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestReporterWorker_Logs_Counters_And_Gauges(t *testing.T) {
	req := require.New(t)
	var out syncBuffer
	log := slog.New(slog.NewTextHandler(&out, nil))
	stats := observability.NewDeliveryStats()
	stats.RecordMessage(2, 1)
	stats.RecordTyping(1, 0)

	worker := NewReporterWorker(log, stats, func() map[string]int {
		return map[string]int{"connections": 3}
	}, 10*time.Millisecond)

	// When the worker runs for a few ticks
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req.NoError(worker.Run(ctx))

	// Then the counters are logged
	logged := out.String()
	req.Contains(logged, `msg="Delivery stats"`)
	req.Contains(logged, "published=1")
	req.Contains(logged, "typing=1")
	req.Contains(logged, "delivered=3")
	req.Contains(logged, "missed=1")
	req.Contains(logged, "connections=3")
}
