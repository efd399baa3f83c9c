package observability

import (
	"sync/atomic"
)

// DeliveryStats counts fan-out outcomes. A miss is a recipient without a
// live connection (or with a full outbox); it is accounted, never retried.
type DeliveryStats struct {
	published atomic.Uint64
	delivered atomic.Uint64
	missed    atomic.Uint64
	typing    atomic.Uint64
}

type DeliverySnapshot struct {
	Published uint64 `json:"published"`
	Delivered uint64 `json:"delivered"`
	Missed    uint64 `json:"missed"`
	Typing    uint64 `json:"typing"`
}

func NewDeliveryStats() *DeliveryStats {
	return &DeliveryStats{}
}

func (d *DeliveryStats) RecordMessage(delivered, missed int) {
	d.published.Add(1)
	d.delivered.Add(uint64(delivered))
	d.missed.Add(uint64(missed))
}

func (d *DeliveryStats) RecordTyping(delivered, missed int) {
	d.typing.Add(1)
	d.delivered.Add(uint64(delivered))
	d.missed.Add(uint64(missed))
}

func (d *DeliveryStats) Snapshot() DeliverySnapshot {
	return DeliverySnapshot{
		Published: d.published.Load(),
		Delivered: d.delivered.Load(),
		Missed:    d.missed.Load(),
		Typing:    d.typing.Load(),
	}
}
