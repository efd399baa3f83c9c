package runtime

import (
	"chat-sync/contract"
	"chat-sync/domain/chat"
	"chat-sync/domain/event"
	"chat-sync/observability"
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
)

var _ contract.IRouter = (*Router)(nil)

// Router fans events out to the members of a chat.
// The chat id is the only routing key. Each recipient is attempted
// independently and in member order; a recipient without a live
// connection is counted as a miss and never retried here.
type Router struct {
	log      *slog.Logger
	registry contract.IRegistry
	resolver contract.IMembershipResolver
	stats    *observability.DeliveryStats
}

func NewRouter(log *slog.Logger, registry contract.IRegistry,
	resolver contract.IMembershipResolver, stats *observability.DeliveryStats) *Router {
	if stats == nil {
		stats = observability.NewDeliveryStats()
	}
	return &Router{log: log, registry: registry, resolver: resolver, stats: stats}
}

// PublishMessage delivers message to every member of its chat, sender included.
func (r *Router) PublishMessage(ctx context.Context, message chat.Message) (contract.DeliveryReport, error) {
	members, err := r.resolver.MembersOf(ctx, message.ChatID)
	if err != nil {
		return contract.DeliveryReport{}, err
	}
	payload, err := event.NewMessageEvent(message).Encode()
	if err != nil {
		return contract.DeliveryReport{}, fmt.Errorf("encode message %s: %w", message.ID, err)
	}

	report := r.fanout(members, payload)
	r.stats.RecordMessage(report.Delivered, report.Missed)
	r.log.Debug("Message published",
		"chat_id", message.ChatID,
		"message_id", message.ID,
		"delivered", report.Delivered,
		"missed", report.Missed)
	return report, nil
}

// PublishTyping delivers a typing transition to every member but the originator.
func (r *Router) PublishTyping(ctx context.Context, chatID chat.ChatID,
	participantID chat.ParticipantID, isTyping bool) (contract.DeliveryReport, error) {
	members, err := r.resolver.MembersOf(ctx, chatID)
	if err != nil {
		return contract.DeliveryReport{}, err
	}
	payload, err := event.NewTypingEvent(chatID, participantID, isTyping).Encode()
	if err != nil {
		return contract.DeliveryReport{}, fmt.Errorf("encode typing: %w", err)
	}

	report := r.fanout(lo.Without(members, participantID), payload)
	r.stats.RecordTyping(report.Delivered, report.Missed)
	return report, nil
}

func (r *Router) fanout(audience []chat.ParticipantID, payload []byte) contract.DeliveryReport {
	report := contract.DeliveryReport{Audience: len(audience)}
	for _, participantID := range audience {
		if r.registry.Send(participantID, payload) {
			report.Delivered++
		} else {
			report.Missed++
		}
	}
	return report
}
