package worker

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/event"
	reportService "hotel/internal/domains/report/service"
	"hotel/shared/constant"
	"sync"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Consumer keeps report caches in step with booking and invoice events.
type Consumer struct {
	client kafka.Client
	report reportService.Report
	cfg    *config.Config
	otel   otel.Otel
}

func NewConsumer(client kafka.Client, report reportService.Report, cfg *config.Config, otel otel.Otel) *Consumer {
	return &Consumer{
		client: client,
		report: report,
		cfg:    cfg,
		otel:   otel,
	}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for _, topic := range []string{c.cfg.Kafka.Topics.BookingEvents, c.cfg.Kafka.Topics.InvoiceEvents} {
		wg.Add(1)

		go func() {
			defer wg.Done()

			log.Info().Str("topic", topic).Msg("consuming events")

			c.client.Consume(ctx, c.cfg.Kafka.ConsumerGroup, topic, c.Handle)
		}()
	}

	wg.Wait()

	if err := c.client.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close kafka client")
	}
}

func (c *Consumer) Handle(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Handle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	evt, err := kafka.Decode[event.Event](message)
	if err != nil {
		log.Error().Err(err).Str("topic", message.Topic).Str("type", kafka.EventType(message)).Msg("failed to decode event")

		return fmt.Errorf("failed to decode event: %w", err)
	}

	scope.SetAttributes(map[string]any{"event.type": evt.Type, "event.entity_id": evt.EntityID, "event.offset": message.Offset})

	if err = c.report.HandleBookingEvent(ctx, evt); err != nil {
		log.Error().Err(err).Str("type", evt.Type).Msg("failed to handle event")

		return fmt.Errorf("failed to handle event: %w", err)
	}

	return nil
}
