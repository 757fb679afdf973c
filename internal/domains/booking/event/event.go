package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=../mocks/event_mock.go -package=mocks

import (
	"context"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/shared/constant"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	TypeBookingCreated    = "booking.created"
	TypeBookingUpdated    = "booking.updated"
	TypeBookingCancelled  = "booking.cancelled"
	TypeBookingCheckedIn  = "booking.checked_in"
	TypeBookingCheckedOut = "booking.checked_out"
	TypeBookingCompleted  = "booking.completed"
	TypeBookingSwept      = "booking.swept"
	TypeInvoiceCreated    = "invoice.created"

	invoicePrefix = "invoice."
)

// Event is the payload published for every booking or invoice state change.
type Event struct {
	Type       string    `json:"type"`
	EntityID   string    `json:"entity_id"`
	HotelID    string    `json:"hotel_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, events ...Event)
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (p *publisherImpl) topic(eventType string) string {
	if strings.HasPrefix(eventType, invoicePrefix) {
		return p.cfg.Kafka.Topics.InvoiceEvents
	}

	return p.cfg.Kafka.Topics.BookingEvents
}

// Publish sends events in the background; failures are logged and never reach the caller.
func (p *publisherImpl) Publish(ctx context.Context, events ...Event) {
	if len(events) == 0 || len(p.cfg.Kafka.Brokers) == 0 {
		return
	}

	go func() {
		c, scope := p.otel.NewScope(context.WithoutCancel(ctx), constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
		defer scope.End()

		byTopic := map[string][]kafka.Message{}
		for _, evt := range events {
			topic := p.topic(evt.Type)
			byTopic[topic] = append(byTopic[topic], kafka.Message{Key: evt.EntityID, EventType: evt.Type, Value: evt})
		}

		for topic, messages := range byTopic {
			if err := p.client.SendMessages(c, topic, messages...); err != nil {
				scope.TraceError(err)
				log.Error().Err(err).Str("topic", topic).Msg("failed to publish events")
			}
		}
	}()
}
