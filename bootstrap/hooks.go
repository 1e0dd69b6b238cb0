package bootstrap

import (
	"context"
	"fmt"
)

// Hook is a lifecycle callback that runs during startup or shutdown.
type Hook func(ctx context.Context) error

// OnStart registers hooks that run before the task, in registration order.
func (r *Runner) OnStart(hooks ...Hook) {
	r.onStart = append(r.onStart, hooks...)
}

// OnStop registers hooks that run after the task finishes, whether it
// succeeded or not. Use these to flush and shut down telemetry providers.
func (r *Runner) OnStop(hooks ...Hook) {
	r.onStop = append(r.onStop, hooks...)
}

// runHooks executes a slice of hooks sequentially, returning the first error.
func runHooks(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}
