// Package bootstrap manages the lifecycle of a finite command-line task.
//
// A Runner executes one task with signal-based cancellation: SIGINT or
// SIGTERM cancel the task's context instead of killing the process, so
// in-flight jobs can wind down through their own grace periods. Startup and
// shutdown hooks bracket the task; shutdown hooks run whether the task
// succeeded or not, bounded by a graceful timeout.
//
//	runner := bootstrap.NewRunner("grangerbatch", version.GetShortVersion(),
//	    bootstrap.WithLogger(log),
//	)
//	runner.OnStop(func(ctx context.Context) error {
//	    return tracerProvider.Shutdown(ctx)
//	})
//	err := runner.RunTask(ctx, func(ctx context.Context) error {
//	    return runBatch(ctx)
//	})
package bootstrap
