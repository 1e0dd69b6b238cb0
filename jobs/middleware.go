package jobs

import (
	"context"
	"time"

	"github.com/kbukum/grangerbatch/batch"
	"github.com/kbukum/grangerbatch/logger"
	"github.com/kbukum/grangerbatch/observability"
)

// WithLogging wraps an executor with start/finish logging.
// Logs: job id, duration, and success/error status.
func WithLogging(exec batch.Executor, jobID string, log *logger.Logger) batch.Executor {
	return &loggingExecutor{inner: exec, jobID: jobID, log: log}
}

type loggingExecutor struct {
	inner batch.Executor
	jobID string
	log   *logger.Logger
}

func (e *loggingExecutor) Execute(ctx context.Context, inputDir, outputDir string) (bool, error) {
	e.log.Info("job starting", logger.Fields(
		logger.FieldJob, e.jobID,
		logger.FieldInputDir, inputDir,
		logger.FieldOutputDir, outputDir,
	))

	start := time.Now()
	ok, err := e.inner.Execute(ctx, inputDir, outputDir)
	duration := time.Since(start)

	fields := map[string]interface{}{
		logger.FieldJob:      e.jobID,
		logger.FieldDuration: duration.Milliseconds(),
	}
	switch {
	case err != nil:
		fields["error"] = err.Error()
		e.log.Error("job failed", fields)
	case !ok:
		e.log.Error("job reported failure", fields)
	default:
		e.log.Info("job completed", fields)
	}

	return ok, err
}

// WithTracing wraps an executor with OpenTelemetry span creation.
// Each execution creates a "job.run" span carrying the job id.
func WithTracing(exec batch.Executor, jobID string) batch.Executor {
	return &tracingExecutor{inner: exec, jobID: jobID}
}

type tracingExecutor struct {
	inner batch.Executor
	jobID string
}

func (e *tracingExecutor) Execute(ctx context.Context, inputDir, outputDir string) (bool, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanJobRun)
	defer span.End()

	observability.SetSpanAttribute(ctx, observability.AttrJobID, e.jobID)

	ok, err := e.inner.Execute(ctx, inputDir, outputDir)
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	status := batch.StatusCompleted
	if err != nil || !ok {
		status = batch.StatusFailed
	}
	observability.SetSpanAttribute(ctx, observability.AttrStatus, string(status))

	return ok, err
}

// WithMetrics wraps an executor with metric recording.
// Records execution count, duration, and errors.
func WithMetrics(exec batch.Executor, jobID string, metrics *observability.BatchMetrics) batch.Executor {
	return &metricsExecutor{inner: exec, jobID: jobID, metrics: metrics}
}

type metricsExecutor struct {
	inner   batch.Executor
	jobID   string
	metrics *observability.BatchMetrics
}

func (e *metricsExecutor) Execute(ctx context.Context, inputDir, outputDir string) (bool, error) {
	start := time.Now()
	ok, err := e.inner.Execute(ctx, inputDir, outputDir)
	duration := time.Since(start)

	status := batch.StatusCompleted
	if err != nil || !ok {
		status = batch.StatusFailed
		e.metrics.RecordError(ctx, "execute", e.jobID)
	}
	e.metrics.RecordJob(ctx, e.jobID, string(status), duration)

	return ok, err
}
