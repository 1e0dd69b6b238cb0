package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/grangerbatch/batch"
	apperrors "github.com/kbukum/grangerbatch/errors"
)

// TelemetryObserver bridges batch lifecycle callbacks to OpenTelemetry: one
// span per batch run, one child span per finished job, and the BatchMetrics
// instruments. If metrics is nil, metric recording is silently skipped.
//
// The observer tracks one run at a time; concurrent batch runs need separate
// observers.
type TelemetryObserver struct {
	service string
	metrics *BatchMetrics

	mu       sync.Mutex
	batchCtx context.Context
	span     trace.Span
}

// NewTelemetryObserver creates an observer publishing under the given
// service name.
func NewTelemetryObserver(service string, metrics *BatchMetrics) *TelemetryObserver {
	return &TelemetryObserver{service: service, metrics: metrics}
}

// BatchStarted opens the run span.
func (t *TelemetryObserver) BatchStarted(ctx context.Context, runID string, jobIDs []string) {
	ctx, span := StartSpan(ctx, SpanBatchExecute)
	span.SetAttributes(
		attribute.String(AttrServiceName, t.service),
		attribute.String(AttrRunID, runID),
		attribute.Int(AttrJobCount, len(jobIDs)),
		attribute.StringSlice("job.ids", jobIDs),
	)

	t.mu.Lock()
	t.batchCtx = ctx
	t.span = span
	t.mu.Unlock()
}

// JobAdmitted fires when a job takes a gate slot.
func (t *TelemetryObserver) JobAdmitted(ctx context.Context) {
	if t.metrics != nil {
		t.metrics.RecordJobStart(ctx)
	}
}

// JobReleased fires when a job returns its gate slot.
func (t *TelemetryObserver) JobReleased(ctx context.Context) {
	if t.metrics != nil {
		t.metrics.RecordJobRelease(ctx)
	}
}

// JobFinished emits a job span spanning the outcome's recorded window, as a
// child of the run span.
func (t *TelemetryObserver) JobFinished(ctx context.Context, outcome batch.Outcome) {
	t.mu.Lock()
	parent := t.batchCtx
	t.mu.Unlock()
	if parent == nil {
		parent = ctx
	}

	_, span := StartSpan(parent, SpanJobRun, trace.WithTimestamp(outcome.StartedAt))
	span.SetAttributes(
		attribute.String(AttrJobID, outcome.JobID),
		attribute.String(AttrStatus, string(outcome.Status)),
		attribute.Int64(AttrDurationMs, outcome.Duration().Milliseconds()),
	)
	if outcome.Err != nil {
		span.RecordError(outcome.Err)
		span.SetAttributes(attribute.String(AttrErrorMessage, outcome.Err.Error()))
	}
	span.End(trace.WithTimestamp(outcome.FinishedAt))

	if t.metrics != nil {
		t.metrics.RecordJob(ctx, outcome.JobID, string(outcome.Status), outcome.Duration())
		if outcome.Failed() {
			t.metrics.RecordError(ctx, string(apperrors.CodeOf(outcome.Err)), "batch")
		}
	}
}

// BatchFinished closes the run span with aggregate counts.
func (t *TelemetryObserver) BatchFinished(ctx context.Context, result *batch.Result) {
	status := string(batch.StatusCompleted)
	if result.Failed() > 0 {
		status = string(batch.StatusFailed)
	}

	t.mu.Lock()
	span := t.span
	t.span = nil
	t.batchCtx = nil
	t.mu.Unlock()

	if span != nil {
		span.SetAttributes(
			attribute.String(AttrStatus, status),
			attribute.Int("jobs.succeeded", result.Succeeded()),
			attribute.Int("jobs.failed", result.Failed()),
			attribute.Int64(AttrDurationMs, result.Duration().Milliseconds()),
		)
		span.End()
	}

	if t.metrics != nil {
		t.metrics.RecordBatch(ctx, status, result.Duration())
	}
}

var _ batch.Observer = (*TelemetryObserver)(nil)
