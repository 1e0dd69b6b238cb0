package batch

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	apperrors "github.com/kbukum/grangerbatch/errors"
	"github.com/kbukum/grangerbatch/logger"
)

// Runner executes one job type and turns whatever happens inside the
// executor into exactly one Outcome. Executor panics are recovered and
// recorded as failures so a misbehaving job can never take down the batch.
type Runner struct {
	log *logger.Logger
}

// NewRunner creates a Runner. A nil logger falls back to the component
// logger for "runner".
func NewRunner(log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Get("runner")
	}
	return &Runner{log: log}
}

// Run executes the job against the given directories and returns its
// outcome. It never returns an error and never panics: failure is data.
func (r *Runner) Run(ctx context.Context, jt JobType, inputDir, outputDir string) Outcome {
	log := r.log.WithJob(jt.ID)
	log.Info("job started", logger.Fields(logger.FieldOperation, jt.Name))

	start := time.Now()
	ok, err := r.executeGuarded(ctx, jt, inputDir, outputDir)
	duration := time.Since(start)

	outcome := Outcome{
		JobID:      jt.ID,
		Name:       jt.Name,
		StartedAt:  start,
		FinishedAt: start.Add(duration),
	}

	switch {
	case err != nil:
		outcome.Status = StatusFailed
		outcome.Err = apperrors.JobFailure(jt.ID, err)
		log.Error("job failed", logger.MergeWithDuration(logger.ErrorFields(jt.Name, err), duration))
	case !ok:
		outcome.Status = StatusFailed
		outcome.Err = apperrors.JobReportedFailure(jt.ID)
		log.Error("job reported failure", logger.JobFields(jt.ID, string(StatusFailed), duration))
	default:
		outcome.Status = StatusCompleted
		log.Info("job completed", logger.JobFields(jt.ID, string(StatusCompleted), duration))
	}

	return outcome
}

// executeGuarded invokes the executor with panic isolation. A panic is
// converted into an error carrying the recovered value; the stack is
// logged rather than propagated.
func (r *Runner) executeGuarded(ctx context.Context, jt JobType, inputDir, outputDir string) (ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("panic recovered in executor", map[string]interface{}{
				logger.FieldJob: jt.ID,
				"error":         fmt.Sprintf("%v", rec),
				"stack":         string(debug.Stack()),
			})
			ok = false
			err = apperrors.New(apperrors.ErrCodeExecutorPanic, fmt.Sprintf("executor panicked: %v", rec))
		}
	}()

	if jt.Exec == nil {
		return false, fmt.Errorf("job %s has no executor", jt.ID)
	}
	return jt.Exec.Execute(ctx, inputDir, outputDir)
}
