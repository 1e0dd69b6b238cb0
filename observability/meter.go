package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/grangerbatch/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// BatchMetrics holds OpenTelemetry instruments for batch and job telemetry.
type BatchMetrics struct {
	jobTotal      metric.Int64Counter
	jobDuration   metric.Float64Histogram
	jobActive     metric.Int64UpDownCounter
	batchTotal    metric.Int64Counter
	batchDuration metric.Float64Histogram
	errorTotal    metric.Int64Counter
}

// NewBatchMetrics creates metric instruments on the given meter.
func NewBatchMetrics(meter metric.Meter) (*BatchMetrics, error) {
	jobTotal, err := meter.Int64Counter("job.total",
		metric.WithDescription("Total number of finished jobs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating job.total counter: %w", err)
	}

	jobDuration, err := meter.Float64Histogram("job.duration",
		metric.WithDescription("Duration of jobs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating job.duration histogram: %w", err)
	}

	jobActive, err := meter.Int64UpDownCounter("job.active",
		metric.WithDescription("Number of jobs currently holding a gate slot"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating job.active gauge: %w", err)
	}

	batchTotal, err := meter.Int64Counter("batch.total",
		metric.WithDescription("Total number of batch runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating batch.total counter: %w", err)
	}

	batchDuration, err := meter.Float64Histogram("batch.duration",
		metric.WithDescription("Duration of batch runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating batch.duration histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("error.total",
		metric.WithDescription("Total errors by type and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &BatchMetrics{
		jobTotal:      jobTotal,
		jobDuration:   jobDuration,
		jobActive:     jobActive,
		batchTotal:    batchTotal,
		batchDuration: batchDuration,
		errorTotal:    errorTotal,
	}, nil
}

// RecordJobStart increments the active job count.
func (m *BatchMetrics) RecordJobStart(ctx context.Context) {
	m.jobActive.Add(ctx, 1)
}

// RecordJobRelease decrements the active job count.
func (m *BatchMetrics) RecordJobRelease(ctx context.Context) {
	m.jobActive.Add(ctx, -1)
}

// RecordJob records a finished job with its terminal status.
func (m *BatchMetrics) RecordJob(ctx context.Context, job, status string, duration time.Duration) {
	m.jobTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("job", job),
		attribute.String("status", status),
	))
	m.jobDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("job", job),
	))
}

// RecordBatch records a completed batch run.
func (m *BatchMetrics) RecordBatch(ctx context.Context, status string, duration time.Duration) {
	m.batchTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
	m.batchDuration.Record(ctx, duration.Seconds())
}

// RecordError records an error by type and component.
func (m *BatchMetrics) RecordError(ctx context.Context, errType, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
