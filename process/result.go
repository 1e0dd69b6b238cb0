package process

import (
	"strings"
	"time"
)

// Result holds the output and status of a completed subprocess.
type Result struct {
	// Stdout is the captured standard output.
	Stdout []byte
	// Stderr is the captured standard error.
	Stderr []byte
	// ExitCode is the process exit code. -1 if the process was killed or
	// never started.
	ExitCode int
	// Duration is how long the process ran.
	Duration time.Duration
}

// Success reports whether the process exited cleanly.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// StderrTail returns the last n non-empty lines of stderr, joined by "; ".
// Analysis tools print progress noise before the actual failure reason, so
// the tail is what belongs in an error message.
func (r *Result) StderrTail(n int) string {
	if n <= 0 || len(r.Stderr) == 0 {
		return ""
	}
	raw := strings.Split(strings.TrimSpace(string(r.Stderr)), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "; ")
}
