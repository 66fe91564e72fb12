// Package telemetry wires OpenTelemetry tracing for the tourney CLI.
//
// cmd/tourney calls Setup once per process with the loaded configuration:
// cfg.OTelEndpoint (TOURNEY_OTEL_ENDPOINT, an OTLP/HTTP URL such as
// http://localhost:4318) and cfg.OTelEnabled (TOURNEY_OTEL_ENABLED). The only
// spans tourney records are the "sqlite.transaction" spans opened by the
// sqlite Transactor around every ledger and numbering transaction, tagged
// with the attempt count and the error code of a failed transaction.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Setup registers a global tracer provider exporting to endpoint.
//
// Tracing is opt-in: when enabled is false or endpoint is empty, Setup returns
// a no-op shutdown function and leaves the global provider alone, so the
// Transactor's spans go to the default no-op tracer. stationID, when set, is
// recorded as service.instance.id so traces from several scoring stations
// sharing one database can be told apart.
//
// The returned shutdown function flushes pending spans and should be deferred
// by the caller.
func Setup(ctx context.Context, serviceName, stationID, endpoint string, enabled bool) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	if !enabled || endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(endpoint),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(resourceAttributes(serviceName, stationID)...))
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func resourceAttributes(serviceName, stationID string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{semconv.ServiceName(serviceName)}
	if stationID != "" {
		attrs = append(attrs, semconv.ServiceInstanceID(stationID))
	}
	return attrs
}
