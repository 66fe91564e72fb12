package telemetry

import (
	"testing"

	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func TestResourceAttributes(t *testing.T) {
	attrs := resourceAttributes("tourney", "muelle-norte")
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0] != semconv.ServiceName("tourney") {
		t.Errorf("unexpected service attribute: %v", attrs[0])
	}
	if attrs[1] != semconv.ServiceInstanceID("muelle-norte") {
		t.Errorf("unexpected instance attribute: %v", attrs[1])
	}

	if got := resourceAttributes("tourney", ""); len(got) != 1 {
		t.Errorf("expected only the service name without a station, got %v", got)
	}
}
