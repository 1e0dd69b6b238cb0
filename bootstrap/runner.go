package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/grangerbatch/logger"
)

// Task is the finite unit of work RunTask executes.
type Task func(ctx context.Context) error

// Runner wraps a finite task with lifecycle management: startup hooks,
// signal-based cancellation, and graceful shutdown of whatever the hooks set
// up (telemetry providers, open files).
type Runner struct {
	name    string
	version string
	log     *logger.Logger

	gracefulTimeout time.Duration
	onStart         []Hook
	onStop          []Hook
}

// NewRunner creates a runner for the named application.
func NewRunner(name, version string, opts ...Option) *Runner {
	r := &Runner{
		name:            name,
		version:         version,
		gracefulTimeout: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.GetGlobalLogger()
	}
	return r
}

// RunTask executes a finite task with signal-based cancellation.
// SIGINT/SIGTERM cancel the task's context instead of killing the process,
// so in-flight work can wind down. Whatever the task returns, the OnStop
// hooks run within the graceful timeout. The task's error wins over a
// shutdown error.
func (r *Runner) RunTask(ctx context.Context, task Task) error {
	r.log.Info("Starting application", map[string]interface{}{
		"name":    r.name,
		"version": r.version,
	})

	if err := runHooks(ctx, r.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			r.log.Info("Received signal, canceling task", map[string]interface{}{
				"signal": sig.String(),
			})
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := r.stop(); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}

	return taskErr
}

// stop runs the OnStop hooks within the graceful timeout.
func (r *Runner) stop() error {
	if len(r.onStop) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.gracefulTimeout)
	defer cancel()

	if err := runHooks(ctx, r.onStop); err != nil {
		r.log.Error("Shutdown completed with errors", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}
