package batch

import (
	"context"
	"time"
)

// Status is the terminal state of a job outcome.
type Status string

const (
	// StatusCompleted marks a job whose executor reported success.
	StatusCompleted Status = "completed"
	// StatusFailed marks a job that reported failure, returned an error,
	// or panicked.
	StatusFailed Status = "failed"
)

// Executor performs the actual analysis work for one job type.
// It reads from inputDir, writes into outputDir, and reports success.
// Returning ok=false without an error means the executor detected a
// failure it has already described in its own output; returning a non-nil
// error means the failure was raised mid-work. Either way the job is
// marked failed and the rest of the batch keeps running.
type Executor interface {
	Execute(ctx context.Context, inputDir, outputDir string) (ok bool, err error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, inputDir, outputDir string) (bool, error)

// Execute implements Executor.
func (f ExecutorFunc) Execute(ctx context.Context, inputDir, outputDir string) (bool, error) {
	return f(ctx, inputDir, outputDir)
}

// JobType describes one registered kind of analysis job.
type JobType struct {
	// ID is the stable identifier used in requests and flags ("matrix").
	ID string
	// Name is the human-readable display name ("Matrix Visualizations").
	Name string
	// Description is a one-line summary for listings.
	Description string
	// OutputSubpath is the directory namespace this job writes under,
	// relative to the batch output directory ("matrices").
	OutputSubpath string
	// Exec performs the work.
	Exec Executor
}

// Request describes one batch execution.
type Request struct {
	// JobIDs are the job types to run, in launch order. Duplicates are
	// launched once per occurrence.
	JobIDs []string
	// InputDir is the directory holding the source data. It must exist.
	InputDir string
	// OutputDir is the directory results are written under. It is created
	// if missing.
	OutputDir string
	// Concurrency is the maximum number of jobs running at once.
	// Zero means DefaultConcurrency; negative values are invalid.
	Concurrency int
}

// DefaultConcurrency is used when a request leaves Concurrency unset.
const DefaultConcurrency = 2

// Outcome records the terminal state of one launched job.
type Outcome struct {
	// JobID identifies the job type.
	JobID string
	// Name is the job's display name, echoed for reporting.
	Name string
	// Status is completed or failed.
	Status Status
	// StartedAt is when the executor began (after the gate admitted it).
	StartedAt time.Time
	// FinishedAt is when the executor returned.
	FinishedAt time.Time
	// Err carries the failure when Status is failed, nil otherwise.
	Err error
}

// Duration returns the executor's wall-clock run time.
func (o Outcome) Duration() time.Duration {
	return o.FinishedAt.Sub(o.StartedAt)
}

// Failed reports whether the job ended in failure.
func (o Outcome) Failed() bool {
	return o.Status == StatusFailed
}

// Result aggregates the outcomes of one batch execution.
type Result struct {
	// RunID uniquely identifies this batch run.
	RunID string
	// InputDir and OutputDir echo the validated request.
	InputDir  string
	OutputDir string
	// Outcomes holds one entry per launched job, in launch order.
	Outcomes []Outcome
	// Started and Finished bound the whole batch.
	Started  time.Time
	Finished time.Time
}

// Duration returns the wall-clock time of the whole batch.
func (r *Result) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Succeeded returns the number of completed jobs.
func (r *Result) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == StatusCompleted {
			n++
		}
	}
	return n
}

// Failed returns the number of failed jobs.
func (r *Result) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// AllSucceeded reports whether every launched job completed.
func (r *Result) AllSucceeded() bool {
	return r.Failed() == 0
}
