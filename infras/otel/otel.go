package otel

import (
	"context"
	"hotel/config"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	AttributeHotelID = "hotel.id"
	AttributeUserID  = "enduser.id"
)

type Otel interface {
	NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope)
}

type otelImpl struct {
	tracerProvider oteltrace.TracerProvider
}

// NewScope starts a span tagged with the hotel and the staff user of the request.
func (o *otelImpl) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope) {
	ctx, span := o.tracerProvider.Tracer(scopeName).Start(ctx, spanName, oteltrace.WithAttributes(requestAttributes(ctx)...))

	return ctx, NewScope(span)
}

func requestAttributes(ctx context.Context) []attribute.KeyValue {
	var attributes []attribute.KeyValue

	if hotelID, _ := ctx.Value(constant.ContextKeyHotelID).(string); hotelID != "" {
		attributes = append(attributes, attribute.String(AttributeHotelID, hotelID))
	}

	if userID, _ := ctx.Value(constant.ContextKeyUserID).(string); userID != "" {
		attributes = append(attributes, attribute.String(AttributeUserID, userID))
	}

	return attributes
}

// New exports spans over OTLP/gRPC; without an endpoint spans are created but never exported.
func New(config *config.Config) Otel {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(config.App.Name),
		semconv.DeploymentEnvironmentKey.String(config.Server.Env),
	)

	endpoint := config.External.Otel.Endpoint
	if endpoint == "" {
		log.Warn().Msg("otel endpoint is not set, traces are not exported")

		return &otelImpl{tracerProvider: trace.NewTracerProvider(trace.WithResource(res))}
	}

	exporter, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		log.Fatal().Err(err).Str("endpoint", endpoint).Msg("failed to create OTLP exporter")
	}

	traceProvider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)

	otel.SetTracerProvider(traceProvider)

	return &otelImpl{tracerProvider: traceProvider}
}

// NewWithProvider is used by tests that inspect the recorded spans.
func NewWithProvider(provider oteltrace.TracerProvider) Otel {
	return &otelImpl{tracerProvider: provider}
}
