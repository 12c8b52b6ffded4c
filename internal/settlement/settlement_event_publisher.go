package settlement

import (
	"context"

	"go-settlement/internal/events"
	"go-settlement/internal/messaging/kafka"
)

const aggregateType = "settlement"

type EventPublisher interface {
	PublishGenerated(ctx context.Context, event events.SettlementGeneratedEvent) error
	PublishPaid(ctx context.Context, event events.SettlementPaidEvent) error
	PublishOverridden(ctx context.Context, event events.SettlementOverriddenEvent) error
}

type noopEventPublisher struct{}

func (noopEventPublisher) PublishGenerated(context.Context, events.SettlementGeneratedEvent) error {
	return nil
}

func (noopEventPublisher) PublishPaid(context.Context, events.SettlementPaidEvent) error {
	return nil
}

func (noopEventPublisher) PublishOverridden(context.Context, events.SettlementOverriddenEvent) error {
	return nil
}

// outboxEventPublisher writes events to the outbox table; the producer
// worker relays them to Kafka.
type outboxEventPublisher struct {
	outbox kafka.OutboxRepository
}

func NewOutboxEventPublisher(outbox kafka.OutboxRepository) EventPublisher {
	return &outboxEventPublisher{outbox: outbox}
}

func (p *outboxEventPublisher) enqueue(ctx context.Context, topic, eventType, aggregateID, requestID string, payload any) error {
	event, err := kafka.NewOutboxEvent(topic, eventType, aggregateType, aggregateID, requestID, payload)
	if err != nil {
		return err
	}
	return p.outbox.Create(ctx, &event)
}

func (p *outboxEventPublisher) PublishGenerated(ctx context.Context, event events.SettlementGeneratedEvent) error {
	aggregateID := event.CompanyID + ":" + event.Period + ":" + event.Category
	return p.enqueue(ctx, events.SettlementGeneratedTopic, event.EventType, aggregateID, event.RequestID, event)
}

func (p *outboxEventPublisher) PublishPaid(ctx context.Context, event events.SettlementPaidEvent) error {
	return p.enqueue(ctx, events.SettlementPaidTopic, event.EventType, event.SettlementID, event.RequestID, event)
}

func (p *outboxEventPublisher) PublishOverridden(ctx context.Context, event events.SettlementOverriddenEvent) error {
	return p.enqueue(ctx, events.SettlementOverriddenTopic, event.EventType, event.SettlementID, event.RequestID, event)
}
