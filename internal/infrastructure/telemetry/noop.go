package telemetry

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

func noopMeter() metric.Meter {
	return noop.NewMeterProvider().Meter(TracerName)
}
