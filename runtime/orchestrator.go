// Package runtime handles connection routing, fan-out, presence and expiry.
// It orchestrates the system without containing business logic or domain rules.
package runtime

import (
	"chat-sync/contract"
	"chat-sync/observability"
	"chat-sync/runtime/workers"
	"context"
	"log/slog"
	"time"
)

type OrchestratorConfig struct {
	TypingTimeout  time.Duration
	StatusTTL      time.Duration
	MetricInterval time.Duration
}

// Orchestrator builds the synchronization core and runs its long-lived
// workers (scheduler loop, delivery reporter) under the supervisor.
type Orchestrator struct {
	log        *slog.Logger
	supervisor contract.ISupervisor
	config     OrchestratorConfig
	Stats      *observability.DeliveryStats
	Scheduler  *Scheduler
	Registry   *Registry
	Resolver   *MembershipResolver
	Router     *Router
	Typing     *TypingTracker
	Expiry     *ExpiryEngine
}

func NewOrchestrator(log *slog.Logger, supervisor *workers.Supervisor,
	chats contract.ChatStore, statuses contract.StatusStore, config OrchestratorConfig) *Orchestrator {
	stats := observability.NewDeliveryStats()
	scheduler := NewScheduler(log, time.Now)
	registry := NewRegistry(log)
	resolver := NewMembershipResolver(log, chats)
	router := NewRouter(log, registry, resolver, stats)
	typing := NewTypingTracker(log, router, scheduler, config.TypingTimeout)
	expiry := NewExpiryEngine(log, statuses, scheduler, config.StatusTTL)

	// Closing a connection cancels every typing timer the participant owns.
	registry.OnUnregister(typing.ParticipantGone)

	return &Orchestrator{
		log:        log,
		supervisor: supervisor,
		config:     config,
		Stats:      stats,
		Scheduler:  scheduler,
		Registry:   registry,
		Resolver:   resolver,
		Router:     router,
		Typing:     typing,
		Expiry:     expiry,
	}
}

// Start recovers pending status expiries from the store, then runs the
// supervised workers until ctx is canceled or Stop is called. A recovery
// failure is logged, not fatal: failed purges stay scheduled for retry.
// Start returns once every worker and every in-flight purge has returned.
func (o *Orchestrator) Start(ctx context.Context) error {
	if err := o.Expiry.Recover(ctx); err != nil {
		o.log.Warn("Status expiry recovery incomplete", "error", err)
	}

	o.supervisor.Add(o.Scheduler)
	if o.config.MetricInterval > 0 {
		o.supervisor.Add(workers.NewReporterWorker(o.log, o.Stats, o.gauges, o.config.MetricInterval))
	}

	o.log.Info("Starting orchestrator and all supervised workers")
	o.supervisor.Run(ctx)
	o.Expiry.Wait()
	o.log.Info("Orchestrator stopped")
	return nil
}

// Core exposes the realtime components to the service layer.
func (o *Orchestrator) Core() contract.Core {
	return contract.Core{
		Registry: o.Registry,
		Resolver: o.Resolver,
		Router:   o.Router,
		Typing:   o.Typing,
		Expiry:   o.Expiry,
	}
}

func (o *Orchestrator) gauges() map[string]int {
	return map[string]int{
		"connections":    o.Registry.Connected(),
		"typing":         o.Typing.Active(),
		"timers":         o.Scheduler.Pending(),
		"status_pending": o.Expiry.Pending(),
	}
}

// Stop initiates a graceful shutdown of the supervised workers.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}
