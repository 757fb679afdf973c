package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"hotel/config"
	kafkaMocks "hotel/infras/kafka/mocks"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/booking/event"
	reportMocks "hotel/internal/domains/report/service/mocks"
	"hotel/transport/worker"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "hotel-report"
	cfg.Kafka.Topics.BookingEvents = "hotel.booking.events"
	cfg.Kafka.Topics.InvoiceEvents = "hotel.invoice.events"

	return cfg
}

func TestConsumer_Handle(t *testing.T) {
	occurred := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	payload, err := json.Marshal(event.Event{
		Type:       event.TypeBookingCheckedIn,
		EntityID:   "b-1",
		HotelID:    "hotel-1",
		OccurredAt: occurred,
	})
	require.NoError(t, err)

	tests := []struct {
		name      string
		message   kafkaGo.Message
		setupMock func(report *reportMocks.MockReport)
		wantErr   bool
	}{
		{
			name:    "dispatches decoded event",
			message: kafkaGo.Message{Key: []byte("b-1"), Value: payload},
			setupMock: func(report *reportMocks.MockReport) {
				report.EXPECT().HandleBookingEvent(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, evt event.Event) error {
						assert.Equal(t, event.TypeBookingCheckedIn, evt.Type)
						assert.Equal(t, "b-1", evt.EntityID)
						assert.Equal(t, "hotel-1", evt.HotelID)
						assert.True(t, occurred.Equal(evt.OccurredAt))

						return nil
					})
			},
		},
		{
			name:      "malformed payload",
			message:   kafkaGo.Message{Value: []byte("{not json")},
			setupMock: func(_ *reportMocks.MockReport) {},
			wantErr:   true,
		},
		{
			name:    "handler failure",
			message: kafkaGo.Message{Value: payload},
			setupMock: func(report *reportMocks.MockReport) {
				report.EXPECT().HandleBookingEvent(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			report := reportMocks.NewMockReport(ctrl)
			tt.setupMock(report)

			consumer := worker.NewConsumer(kafkaMocks.NewMockClient(ctrl), report, newConfig(), otelMocks.NewOtel())

			err := consumer.Handle(context.Background(), tt.message)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestConsumer_RunConsumesBothTopics(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)
	cfg := newConfig()

	client.EXPECT().Consume(gomock.Any(), cfg.Kafka.ConsumerGroup, cfg.Kafka.Topics.BookingEvents, gomock.Any())
	client.EXPECT().Consume(gomock.Any(), cfg.Kafka.ConsumerGroup, cfg.Kafka.Topics.InvoiceEvents, gomock.Any())
	client.EXPECT().Close().Return(nil)

	consumer := worker.NewConsumer(client, reportMocks.NewMockReport(ctrl), cfg, otelMocks.NewOtel())
	consumer.Run(context.Background())
}
