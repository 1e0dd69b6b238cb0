// Package observability provides OpenTelemetry tracing and metrics for batch
// runs.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("grangerbatch"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanBatchExecute)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("grangerbatch"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewBatchMetrics(observability.Meter("grangerbatch"))
//	metrics.RecordJob(ctx, "matrix", "completed", duration)
//
// The TelemetryObserver ties both to the batch coordinator's lifecycle
// callbacks: one span per run, one child span per job, counters and
// histograms for totals and durations.
package observability
