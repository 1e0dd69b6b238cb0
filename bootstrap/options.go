package bootstrap

import (
	"time"

	"github.com/kbukum/grangerbatch/logger"
)

// Option configures the Runner during creation.
type Option func(*Runner)

// WithLogger sets a custom logger. If not set, the global logger is used.
func WithLogger(l *logger.Logger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

// WithGracefulTimeout sets the maximum duration for the OnStop hooks.
func WithGracefulTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.gracefulTimeout = d
	}
}
