// Package metrics exposes OpenTelemetry instruments for the workflow service.
package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"apichain/pkg/models"
)

const meterName = "apichain"

// InitProvider wires an OTLP HTTP exporter into the global meter provider.
// Returns the provider so the caller can shut it down on exit. endpoint is a
// host:port such as "localhost:4318".
func InitProvider(ctx context.Context, endpoint string) (*sdkmetric.MeterProvider, error) {
	exporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(endpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(meterName),
	))
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(15*time.Second))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// Metrics holds the instruments the engine and sinks report through. A nil
// *Metrics is valid and records nothing, so callers never need to guard.
type Metrics struct {
	runs          metric.Int64Counter
	records       metric.Int64Counter
	notifyFailure metric.Int64Counter
}

// New creates the workflow instruments on the global meter provider.
func New() (*Metrics, error) {
	meter := otel.Meter(meterName)

	runs, err := meter.Int64Counter("workflow.runs",
		metric.WithDescription("Completed workflow runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating workflow.runs counter: %w", err)
	}

	records, err := meter.Int64Counter("workflow.records",
		metric.WithDescription("History records appended, by status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating workflow.records counter: %w", err)
	}

	notifyFailure, err := meter.Int64Counter("notify.failures",
		metric.WithDescription("Notification attempts that failed, by sink"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating notify.failures counter: %w", err)
	}

	return &Metrics{runs: runs, records: records, notifyFailure: notifyFailure}, nil
}

// AddRun counts one completed workflow run.
func (m *Metrics) AddRun(ctx context.Context) {
	if m == nil {
		return
	}
	m.runs.Add(ctx, 1)
}

// AddRecord counts one appended history record.
func (m *Metrics) AddRecord(ctx context.Context, status models.Status) {
	if m == nil {
		return
	}
	m.records.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(status))))
}

// AddNotifyFailure counts one failed notification attempt.
func (m *Metrics) AddNotifyFailure(ctx context.Context, sink string) {
	if m == nil {
		return
	}
	m.notifyFailure.Add(ctx, 1, metric.WithAttributes(attribute.String("sink", sink)))
}
