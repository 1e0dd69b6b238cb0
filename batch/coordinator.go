package batch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/kbukum/grangerbatch/errors"
	"github.com/kbukum/grangerbatch/logger"
)

// Workspace prepares and validates the directories a batch works in.
// The coordinator consumes this narrow view; the workspace package
// provides the filesystem-backed implementation.
type Workspace interface {
	// ValidateInput checks that dir exists, is a directory, and is usable
	// as batch input. Failures carry the INVALID_INPUT_DIRECTORY code.
	ValidateInput(dir string) error
	// PrepareOutputs creates base and each subpath under it, idempotently.
	// Failures carry the INVALID_OUTPUT_DIRECTORY code.
	PrepareOutputs(base string, subpaths []string) error
}

// Coordinator turns a Request into a Result: it validates fail-fast,
// resolves job ids, prepares the workspace, launches every job under a
// shared gate, waits for all of them, and aggregates outcomes in launch
// order.
type Coordinator struct {
	registry *Registry
	ws       Workspace
	runner   *Runner
	log      *logger.Logger
	observer Observer
	newRunID func() string
}

// CoordinatorOption customizes a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithLogger sets the coordinator's logger.
func WithLogger(log *logger.Logger) CoordinatorOption {
	return func(c *Coordinator) { c.log = log }
}

// WithRunner sets a custom runner.
func WithRunner(r *Runner) CoordinatorOption {
	return func(c *Coordinator) { c.runner = r }
}

// WithObserver registers a lifecycle observer.
func WithObserver(obs Observer) CoordinatorOption {
	return func(c *Coordinator) { c.observer = obs }
}

// WithRunIDFunc overrides run id generation.
func WithRunIDFunc(fn func() string) CoordinatorOption {
	return func(c *Coordinator) { c.newRunID = fn }
}

// NewCoordinator creates a Coordinator over the given registry and
// workspace.
func NewCoordinator(registry *Registry, ws Workspace, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		registry: registry,
		ws:       ws,
		observer: NopObserver{},
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Get("coordinator")
	}
	if c.runner == nil {
		c.runner = NewRunner(c.log)
	}
	return c
}

// Execute runs one batch. Validation errors (empty selection, unknown job
// id, bad directories, negative concurrency) return before any job
// launches. After launch, Execute always waits for every job and returns
// a Result with one outcome per requested job in launch order; job
// failures are captured in outcomes, never returned as an error.
func (c *Coordinator) Execute(ctx context.Context, req Request) (*Result, error) {
	if err := c.validate(req); err != nil {
		return nil, err
	}

	jobs, err := c.registry.ResolveAll(req.JobIDs)
	if err != nil {
		return nil, err
	}

	if err := c.ws.ValidateInput(req.InputDir); err != nil {
		return nil, err
	}

	subpaths := make([]string, len(jobs))
	for i, jt := range jobs {
		subpaths[i] = jt.OutputSubpath
	}
	if err := c.ws.PrepareOutputs(req.OutputDir, subpaths); err != nil {
		return nil, err
	}

	concurrency := req.Concurrency
	if concurrency == 0 {
		concurrency = DefaultConcurrency
	}

	runID := c.newRunID()
	log := c.log.WithRun(runID)
	log.Info("batch started", map[string]interface{}{
		logger.FieldConcurrency: concurrency,
		logger.FieldInputDir:    req.InputDir,
		logger.FieldOutputDir:   req.OutputDir,
		"jobs":                  strings.Join(req.JobIDs, ","),
	})
	c.observer.BatchStarted(ctx, runID, req.JobIDs)

	gate := NewGate(concurrency)
	gate.OnAcquire = func() { c.observer.JobAdmitted(ctx) }
	gate.OnRelease = func() { c.observer.JobReleased(ctx) }

	outcomes := make([]Outcome, len(jobs))
	var wg sync.WaitGroup
	for i, jt := range jobs {
		wg.Add(1)
		go func(idx int, jt JobType) {
			defer wg.Done()
			// Each worker writes only its own slot, so no lock is needed.
			outcomes[idx] = c.launch(ctx, gate, jt, req)
			c.observer.JobFinished(ctx, outcomes[idx])
		}(i, jt)
	}
	wg.Wait()

	result := c.assemble(runID, req, outcomes)
	log.Info("batch finished", map[string]interface{}{
		logger.FieldSucceeded: result.Succeeded(),
		logger.FieldFailed:    result.Failed(),
		logger.FieldDuration:  result.Duration().Milliseconds(),
	})
	c.observer.BatchFinished(ctx, result)

	return result, nil
}

// launch runs one job through the gate. If admission is canceled before
// the job ever runs, a failed outcome is synthesized so the result still
// carries one outcome per requested job.
func (c *Coordinator) launch(ctx context.Context, gate *Gate, jt JobType, req Request) Outcome {
	var outcome Outcome
	outputDir := filepath.Join(req.OutputDir, jt.OutputSubpath)

	err := gate.Run(ctx, func() error {
		outcome = c.runner.Run(ctx, jt, req.InputDir, outputDir)
		return nil
	})
	if err != nil {
		now := time.Now()
		outcome = Outcome{
			JobID:      jt.ID,
			Name:       jt.Name,
			Status:     StatusFailed,
			StartedAt:  now,
			FinishedAt: now,
			Err:        apperrors.JobFailure(jt.ID, err),
		}
	}
	return outcome
}

// validate applies the fail-fast request checks that precede any launch.
func (c *Coordinator) validate(req Request) error {
	if len(req.JobIDs) == 0 {
		return apperrors.InvalidConfiguration("no job types selected")
	}
	if strings.TrimSpace(req.InputDir) == "" {
		return apperrors.InvalidConfiguration("input directory is required")
	}
	if strings.TrimSpace(req.OutputDir) == "" {
		return apperrors.InvalidConfiguration("output directory is required")
	}
	if req.Concurrency < 0 {
		return apperrors.InvalidConfiguration("concurrency must be positive")
	}
	return nil
}

// assemble builds the Result. The batch window runs from the first job's
// start to the last job's finish.
func (c *Coordinator) assemble(runID string, req Request, outcomes []Outcome) *Result {
	result := &Result{
		RunID:     runID,
		InputDir:  req.InputDir,
		OutputDir: req.OutputDir,
		Outcomes:  outcomes,
	}
	for _, o := range outcomes {
		if result.Started.IsZero() || o.StartedAt.Before(result.Started) {
			result.Started = o.StartedAt
		}
		if o.FinishedAt.After(result.Finished) {
			result.Finished = o.FinishedAt
		}
	}
	return result
}
