package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hilthontt/roombook/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the publishing half of an AMQP channel.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type BookingPublisher struct {
	channel  Channel
	exchange string
	now      func() time.Time
}

var _ domain.BookingPublisher = (*BookingPublisher)(nil)

func NewBookingPublisher(channel Channel, exchange string) *BookingPublisher {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &BookingPublisher{
		channel:  channel,
		exchange: exchange,
		now:      time.Now,
	}
}

func (p *BookingPublisher) PublishBookingCreated(ctx context.Context, event domain.Event) error {
	return p.publish(ctx, EventBookingCreated, event)
}

func (p *BookingPublisher) PublishBookingCancelled(ctx context.Context, event domain.Event) error {
	return p.publish(ctx, EventBookingCancelled, event)
}

func (p *BookingPublisher) publish(ctx context.Context, routingKey string, event domain.Event) error {
	now := p.now().UTC()

	body, err := json.Marshal(BookingEventData{
		EventID:    event.ID,
		RoomID:     event.RoomID,
		RoomNumber: event.RoomNumber,
		UserID:     event.UserID,
		StartTime:  event.StartTime.UTC(),
		OccurredAt: now,
	})
	if err != nil {
		return fmt.Errorf("encode %s: %w", routingKey, err)
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    now,
		Type:         routingKey,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	return nil
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishBookingCreated(context.Context, domain.Event) error   { return nil }
func (NopPublisher) PublishBookingCancelled(context.Context, domain.Event) error { return nil }
