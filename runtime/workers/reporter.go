package workers

import (
	"chat-sync/observability"
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ReporterWorker logs delivery counters and the server's own resource usage at a fixed interval.
type ReporterWorker struct {
	log      *slog.Logger
	stats    *observability.DeliveryStats
	gauges   func() map[string]int
	interval time.Duration
	self     *process.Process
}

func NewReporterWorker(log *slog.Logger, stats *observability.DeliveryStats,
	gauges func() map[string]int, interval time.Duration) *ReporterWorker {
	return &ReporterWorker{log: log, stats: stats, gauges: gauges, interval: interval}
}

// Run starts the reporting loop until context cancellation.
func (w *ReporterWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		w.log.Warn("Process stats unavailable", "error", err)
	} else {
		w.self = p
	}

	for {
		select {
		case <-ctx.Done():
			w.report()
			return nil
		case <-ticker.C:
			w.report()
		}
	}
}

func (w *ReporterWorker) report() {
	snapshot := w.stats.Snapshot()
	attrs := []any{
		"published", snapshot.Published,
		"typing", snapshot.Typing,
		"delivered", snapshot.Delivered,
		"missed", snapshot.Missed,
	}
	if w.gauges != nil {
		for name, value := range w.gauges() {
			attrs = append(attrs, name, value)
		}
	}
	if rss, cpu, err := selfStats(w.self); err == nil {
		attrs = append(attrs, "rss_bytes", rss, "cpu_percent", cpu)
	}
	w.log.Info("Delivery stats", attrs...)
}

// selfStats retrieves resident memory and CPU usage of the given process.
func selfStats(p *process.Process) (uint64, float64, error) {
	if p == nil {
		return 0, 0, os.ErrInvalid
	}
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
