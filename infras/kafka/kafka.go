package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"hotel/config"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	HeaderEventType = "event-type"

	writeBatchTimeout = 50 * time.Millisecond
	handleAttempts    = 3
)

var retryDelay = time.Second

// Message is a keyed JSON payload. Messages sharing a key land on the same partition.
type Message struct {
	Key       string
	EventType string
	Value     any
}

// Encode turns m into a wire message for topic.
func Encode(topic string, m Message) (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	msg := kafkaGo.Message{
		Topic: topic,
		Key:   []byte(m.Key),
		Value: value,
	}

	if m.EventType != "" {
		msg.Headers = append(msg.Headers, kafkaGo.Header{Key: HeaderEventType, Value: []byte(m.EventType)})
	}

	return msg, nil
}

// Decode reads the JSON payload of msg into a T.
func Decode[T any](msg kafkaGo.Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		return value, fmt.Errorf("failed to unmarshal Kafka message value from JSON: %w", err)
	}

	return value, nil
}

// EventType returns the event-type header, or an empty string.
func EventType(msg kafkaGo.Message) string {
	for _, header := range msg.Headers {
		if header.Key == HeaderEventType {
			return string(header.Value)
		}
	}

	return ""
}

// Handler processes one message. It may run more than once for the same message.
type Handler func(ctx context.Context, message kafkaGo.Message) error

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Consume(ctx context.Context, consumerGroup, topic string, handler Handler)
	Close() error
}

type kafkaClientImpl struct {
	config *config.Config
	dialer *kafkaGo.Dialer
	writer *kafkaGo.Writer
}

func mechanism(cfg *config.Config) sasl.Mechanism {
	if cfg.Kafka.SASL.Username == "" {
		return nil
	}

	return plain.Mechanism{
		Username: cfg.Kafka.SASL.Username,
		Password: cfg.Kafka.SASL.Password,
	}
}

func New(cfg *config.Config) Client {
	auth := mechanism(cfg)

	client := &kafkaClientImpl{
		config: cfg,
		dialer: &kafkaGo.Dialer{DualStack: true, SASLMechanism: auth},
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(cfg.Kafka.Brokers...),
			Transport:              &kafkaGo.Transport{SASL: auth},
			Balancer:               &kafkaGo.Hash{},
			RequiredAcks:           kafkaGo.RequireOne,
			BatchTimeout:           writeBatchTimeout,
			AllowAutoTopicCreation: true,
		},
	}

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Bool("sasl", auth != nil).Msg("Kafka client initialized")

	return client
}

func (k *kafkaClientImpl) reader(consumerGroup, topic string) *kafkaGo.Reader {
	groupID := k.config.Kafka.ConsumerGroup
	if consumerGroup != "" {
		groupID = consumerGroup
	}

	return kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Kafka.Brokers,
		Topic:       topic,
		GroupID:     groupID,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})
}

func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) (err error) {
	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := Encode(topic, message)
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Str("key", message.Key).Msg("Failed to encode Kafka message")

			return err
		}

		msgs = append(msgs, msg)
	}

	if err = k.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to send message to Kafka")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Debug().Str("topic", topic).Int("count", len(msgs)).Msg("Sent messages")

	return nil
}

// Consume handles messages of topic in order until ctx is cancelled.
// A message is retried a few times and then skipped; its offset is committed either way.
func (k *kafkaClientImpl) Consume(ctx context.Context, consumerGroup, topic string, handler Handler) {
	if topic == "" {
		log.Error().Msg("Topic name cannot be empty when consuming from Kafka")

		return
	}

	reader := k.reader(consumerGroup, topic)

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to close Kafka reader")
		}
	}()

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Str("topic", topic).Msg("Consumer stopped")

				return
			}

			log.Error().Err(err).Str("topic", topic).Msg("Failed to fetch message from Kafka")

			continue
		}

		if err = handleWithRetry(ctx, handler, msg); err != nil {
			if ctx.Err() != nil {
				return
			}

			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Str("key", string(msg.Key)).
				Msg("Skipping message after repeated failures")
		}

		if err = reader.CommitMessages(ctx, msg); err != nil {
			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Msg("Failed to commit Kafka offset")
		}
	}
}

func handleWithRetry(ctx context.Context, handler Handler, msg kafkaGo.Message) (err error) {
	for attempt := 1; attempt <= handleAttempts; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}

		if attempt == handleAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err() // nolint:wrapcheck
		case <-time.After(retryDelay * time.Duration(attempt)):
		}
	}

	return err
}

func (k *kafkaClientImpl) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}

	return nil
}
