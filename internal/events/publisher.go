package events

import (
	"context"
	"time"

	bookingDomain "github.com/DmitryMisevra/shareit/internal/domain/booking"
	"github.com/DmitryMisevra/shareit/internal/kafka"
	"go.uber.org/zap"
)

// TopicBookingEvents is the topic carrying booking lifecycle events.
const TopicBookingEvents = "booking.events"

// Event types published on TopicBookingEvents.
const (
	BookingCreated  = "booking.created"
	BookingApproved = "booking.approved"
	BookingRejected = "booking.rejected"
)

const eventSource = "shareit-server"

// BookingEvent is the payload of every booking lifecycle event.
type BookingEvent struct {
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	BookerID   int64     `json:"booker_id"`
	OwnerID    int64     `json:"owner_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits booking lifecycle events to Kafka. Publish failures are
// logged and never fail the originating request.
type Publisher struct {
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewPublisher creates a Publisher over the given producer.
func NewPublisher(producer *kafka.Producer, logger *zap.Logger) *Publisher {
	return &Publisher{producer: producer, logger: logger}
}

// BookingCreated announces a freshly persisted WAITING booking.
func (p *Publisher) BookingCreated(ctx context.Context, b *bookingDomain.Booking) {
	p.publish(ctx, BookingCreated, b)
}

// BookingStatusChanged announces an owner's approve/reject verdict.
func (p *Publisher) BookingStatusChanged(ctx context.Context, b *bookingDomain.Booking) {
	eventType := BookingApproved
	if b.Status() == bookingDomain.StatusRejected {
		eventType = BookingRejected
	}
	p.publish(ctx, eventType, b)
}

func (p *Publisher) publish(ctx context.Context, eventType string, b *bookingDomain.Booking) {
	evt := BookingEvent{
		BookingID:  b.ID(),
		ItemID:     b.Item().ID(),
		BookerID:   b.Booker().ID(),
		OwnerID:    b.Item().OwnerID(),
		Start:      b.Start(),
		End:        b.End(),
		Status:     b.Status().String(),
		OccurredAt: time.Now().UTC(),
	}

	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, evt)
	if err != nil {
		p.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := p.producer.PublishEvent(ctx, TopicBookingEvents, cloudEvent); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Int64("booking_id", b.ID()),
			zap.Error(err),
		)
	}
}
