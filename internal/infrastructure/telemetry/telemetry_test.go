package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, tp.Enabled())
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), MetricsConfig{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, mp.Meter("x"))
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestSamplerFor(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), samplerFor(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), samplerFor(0).Description())
	assert.Contains(t, samplerFor(0.25).Description(), "TraceIDRatioBased")
}

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return rec
}

func TestStartServiceSpan(t *testing.T) {
	rec := withRecorder(t)

	ctx, span := StartServiceSpan(context.Background(), "receipt", "generate",
		SpanAttrCedula, int64(4567890), SpanAttrPages, 2, 42, "skipped")
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())
	SetAttributes(span, "extra", true)
	RecordError(span, errors.New("render failed"))
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	s := ended[0]
	assert.Equal(t, "receipt.generate", s.Name())
	assert.Equal(t, codes.Error, s.Status().Code)

	attrs := map[string]string{}
	for _, kv := range s.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "4567890", attrs[SpanAttrCedula])
	assert.Equal(t, "2", attrs[SpanAttrPages])
	assert.Equal(t, "true", attrs["extra"])
	assert.Len(t, attrs, 3)
}

func TestFlush_WrapsError(t *testing.T) {
	err := flush(context.Background(), "meter", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return errors.New("collector gone")
	})
	assert.EqualError(t, err, "shutdown meter provider: collector gone")
}

func TestRegistrationMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewRegistrationMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.Registered(ctx, "NOTARIO ELECTORAL")
	m.Registered(ctx, "NOTARIO ELECTORAL")
	m.Rejected(ctx, "DUPLICATE_APPLICANT")
	m.ReviewRecorded(ctx, "Cumple todos los requisitos")
	m.ReceiptGenerated(ctx, 120*time.Millisecond, nil)
	m.ReceiptGenerated(ctx, time.Second, errors.New("x"))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	sums := map[string]int64{}
	for _, md := range rm.ScopeMetrics[0].Metrics {
		switch data := md.Data.(type) {
		case metricdata.Sum[int64]:
			for _, dp := range data.DataPoints {
				sums[md.Name] += dp.Value
			}
		case metricdata.Histogram[float64]:
			var n uint64
			for _, dp := range data.DataPoints {
				n += dp.Count
			}
			assert.Equal(t, uint64(2), n)
		}
	}
	assert.Equal(t, int64(2), sums["sirepre.applicants.registered"])
	assert.Equal(t, int64(1), sums["sirepre.applicants.rejected"])
	assert.Equal(t, int64(1), sums["sirepre.reviews.recorded"])
	assert.Equal(t, int64(2), sums["sirepre.receipts.generated"])
}

func TestNoopRegistrationMetrics(t *testing.T) {
	m := NewNoopRegistrationMetrics()
	require.NotNil(t, m)
	assert.NotPanics(t, func() { m.Registered(context.Background(), "x") })
}
