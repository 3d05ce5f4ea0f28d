package otel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// ShutdownFunc flushes pending metrics and stops the provider.
type ShutdownFunc func(ctx context.Context) error

// Setup installs the global MeterProvider. Metrics flush to stdout on
// a fixed interval, riding the same stream as the JSON logs; there is
// no collector in the deployment picture, so a push exporter would
// have nowhere to go.
func Setup(serviceName string) (ShutdownFunc, error) {
	exporter, err := stdoutmetric.New()
	if err != nil {
		return nil, fmt.Errorf("stdout metric exporter: %w", err)
	}

	res := resource.NewSchemaless(attribute.String("service.name", serviceName))

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(time.Minute)),
		),
	)
	otel.SetMeterProvider(provider)
	return provider.Shutdown, nil
}
