package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"
)

func attributes(kvs []attribute.KeyValue) map[string]string {
	out := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		out[string(kv.Key)] = kv.Value.Emit()
	}

	return out
}

func TestNewScope_TagsRequestCaller(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := otel.NewWithProvider(trace.NewTracerProvider(trace.WithSpanProcessor(recorder)))

	ctx := context.WithValue(context.Background(), constant.ContextKeyHotelID, "hotel-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, "user-9")

	_, scope := tracer.NewScope(ctx, constant.OtelServiceScopeName, "CreateBookingInvoice")
	scope.SetAttribute("invoice.total", decimal.RequireFromString("117.5"))
	scope.SetAttribute("booking.start", time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC))
	scope.SetAttributes(map[string]any{"booking.rooms": 2, "booking.walk_in": false})
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	got := attributes(spans[0].Attributes())
	assert.Equal(t, "hotel-1", got[otel.AttributeHotelID])
	assert.Equal(t, "user-9", got[otel.AttributeUserID])
	assert.Equal(t, "117.50", got["invoice.total"])
	assert.Equal(t, "2025-03-10", got["booking.start"])
	assert.Equal(t, "2", got["booking.rooms"])
	assert.Equal(t, "false", got["booking.walk_in"])
}

func TestNewScope_AnonymousRequest(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := otel.NewWithProvider(trace.NewTracerProvider(trace.WithSpanProcessor(recorder)))

	_, scope := tracer.NewScope(context.Background(), constant.OtelHandlerScopeName, "Login")
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Empty(t, spans[0].Attributes())
}

func TestScope_TraceIfError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := otel.NewWithProvider(trace.NewTracerProvider(trace.WithSpanProcessor(recorder)))

	_, ok := tracer.NewScope(context.Background(), constant.OtelServiceScopeName, "Get")
	ok.TraceIfError(nil)
	ok.End()

	_, failed := tracer.NewScope(context.Background(), constant.OtelServiceScopeName, "CheckOut")
	failed.TraceIfError(errors.New("room already checked out"))
	failed.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "room already checked out", spans[1].Status().Description)
}

func TestNew_WithoutEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "hotel"

	tracer := otel.New(cfg)

	_, scope := tracer.NewScope(context.Background(), constant.OtelServiceScopeName, "Availability")
	assert.NotNil(t, scope)
	scope.End()
}
