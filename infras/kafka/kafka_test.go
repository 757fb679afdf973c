package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkedIn struct {
	BookingID string `json:"booking_id"`
	Rooms     int    `json:"rooms"`
}

func TestEncodeDecode(t *testing.T) {
	msg, err := Encode("hotel.booking.events", Message{
		Key:       "b-1",
		EventType: "booking.checked_in",
		Value:     checkedIn{BookingID: "b-1", Rooms: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, "hotel.booking.events", msg.Topic)
	assert.Equal(t, []byte("b-1"), msg.Key)
	assert.JSONEq(t, `{"booking_id":"b-1","rooms":2}`, string(msg.Value))
	assert.Equal(t, "booking.checked_in", EventType(msg))

	decoded, err := Decode[checkedIn](msg)
	require.NoError(t, err)
	assert.Equal(t, checkedIn{BookingID: "b-1", Rooms: 2}, decoded)
}

func TestEncode_WithoutEventType(t *testing.T) {
	msg, err := Encode("topic", Message{Key: "k", Value: 1})
	require.NoError(t, err)

	assert.Empty(t, msg.Headers)
	assert.Empty(t, EventType(msg))
}

func TestEncodeDecode_Errors(t *testing.T) {
	_, err := Encode("topic", Message{Value: func() {}})
	require.Error(t, err)

	_, err = Decode[checkedIn](kafkaGo.Message{Value: []byte("{")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal")
}

func TestHandleWithRetry(t *testing.T) {
	retryDelay = time.Millisecond

	t.Cleanup(func() { retryDelay = time.Second })

	tests := []struct {
		name      string
		failures  int
		wantErr   bool
		wantCalls int
	}{
		{name: "first attempt succeeds", failures: 0, wantCalls: 1},
		{name: "succeeds on retry", failures: 2, wantCalls: 3},
		{name: "gives up", failures: 5, wantErr: true, wantCalls: handleAttempts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			handler := func(_ context.Context, _ kafkaGo.Message) error {
				calls++
				if calls <= tt.failures {
					return errors.New("report store unavailable")
				}

				return nil
			}

			err := handleWithRetry(context.Background(), handler, kafkaGo.Message{})

			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestHandleWithRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handleWithRetry(ctx, func(_ context.Context, _ kafkaGo.Message) error {
		return errors.New("fail")
	}, kafkaGo.Message{})

	assert.ErrorIs(t, err, context.Canceled)
}
