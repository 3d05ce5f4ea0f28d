package otel

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestSetupInstallsMeterProvider(t *testing.T) {
	shutdown, err := Setup("fieldops-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	if _, ok := otel.GetMeterProvider().(*sdkmetric.MeterProvider); !ok {
		t.Fatalf("global meter provider is still %T, not the SDK provider", otel.GetMeterProvider())
	}

	// Instruments built after Setup must be backed by the SDK, so a
	// record call goes somewhere instead of the noop meter.
	m, err := NewMetrics()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.TasksCreated.Add(context.Background(), 1)
	m.SweepDuration.Record(context.Background(), 0.5)
}
