package batch

import "context"

// Observer receives batch lifecycle callbacks. Implementations must be
// safe for concurrent use: JobAdmitted, JobReleased, and JobFinished are
// called from worker goroutines.
type Observer interface {
	// BatchStarted fires after validation, before any job launches.
	BatchStarted(ctx context.Context, runID string, jobIDs []string)
	// JobAdmitted fires when a job takes a gate slot.
	JobAdmitted(ctx context.Context)
	// JobReleased fires when a job returns its gate slot.
	JobReleased(ctx context.Context)
	// JobFinished fires once per job with its terminal outcome.
	JobFinished(ctx context.Context, outcome Outcome)
	// BatchFinished fires after every outcome is collected.
	BatchFinished(ctx context.Context, result *Result)
}

// NopObserver ignores all callbacks.
type NopObserver struct{}

func (NopObserver) BatchStarted(context.Context, string, []string) {}
func (NopObserver) JobAdmitted(context.Context)                    {}
func (NopObserver) JobReleased(context.Context)                    {}
func (NopObserver) JobFinished(context.Context, Outcome)           {}
func (NopObserver) BatchFinished(context.Context, *Result)         {}
