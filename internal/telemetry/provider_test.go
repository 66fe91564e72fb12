package telemetry_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"

	"github.com/example/tourney/internal/telemetry"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), "tourney-test", "", "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenDisabled(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), "tourney-test", "station-1", "http://localhost:4318", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address; nothing is exported because no spans are recorded.
	shutdown, err := telemetry.Setup(context.Background(), "tourney-test", "station-1", "http://192.0.2.1:4318", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_DisabledLeavesGlobalProvider(t *testing.T) {
	before := otel.GetTracerProvider()
	if _, err := telemetry.Setup(context.Background(), "tourney-test", "station-1", "http://localhost:4318", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if otel.GetTracerProvider() != before {
		t.Error("expected global tracer provider untouched when tracing is disabled")
	}
}
