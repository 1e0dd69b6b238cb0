package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/grangerbatch/batch"
	"github.com/kbukum/grangerbatch/process"
)

// Placeholders substituted into command argv before execution.
const (
	PlaceholderInput  = "{input}"
	PlaceholderOutput = "{output}"
)

// stderrTailLines bounds how much subprocess stderr ends up in a job error.
const stderrTailLines = 5

// CommandExecutor runs an analysis command as a subprocess. Exit code zero
// means success; a non-zero exit or a spawn failure marks the job failed
// with the tail of stderr as the reason.
type CommandExecutor struct {
	def Definition
	// GracePeriod is how long the subprocess gets between SIGTERM and
	// SIGKILL when the run context is canceled. Zero uses the process
	// package default.
	GracePeriod time.Duration
}

// NewCommandExecutor creates an executor for the definition's command.
func NewCommandExecutor(def Definition) *CommandExecutor {
	return &CommandExecutor{def: def}
}

// Execute implements batch.Executor.
func (e *CommandExecutor) Execute(ctx context.Context, inputDir, outputDir string) (bool, error) {
	if len(e.def.Command) == 0 {
		return false, fmt.Errorf("no command configured for job %s", e.def.ID)
	}

	argv := expandArgs(e.def.Command, inputDir, outputDir)
	result, err := process.Run(ctx, process.Command{
		Binary:      argv[0],
		Args:        argv[1:],
		Dir:         e.def.Dir,
		Env:         e.def.Env,
		GracePeriod: e.GracePeriod,
	})
	if err != nil {
		if result != nil {
			if tail := result.StderrTail(stderrTailLines); tail != "" {
				return false, fmt.Errorf("%w: %s", err, tail)
			}
		}
		return false, err
	}
	return result.Success(), nil
}

// expandArgs substitutes the input and output placeholders in every argv
// element, so both bare ("{input}") and embedded ("--input={input}") forms
// work.
func expandArgs(argv []string, inputDir, outputDir string) []string {
	out := make([]string, len(argv))
	for i, arg := range argv {
		arg = strings.ReplaceAll(arg, PlaceholderInput, inputDir)
		arg = strings.ReplaceAll(arg, PlaceholderOutput, outputDir)
		out[i] = arg
	}
	return out
}

var _ batch.Executor = (*CommandExecutor)(nil)
