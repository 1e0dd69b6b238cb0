package workspace

import (
	"os"
	"path/filepath"

	"github.com/kbukum/grangerbatch/batch"
	apperrors "github.com/kbukum/grangerbatch/errors"
)

// DefaultLayout lists the subdirectories prepared under every job's output
// namespace: per-recording results, condition and timepoint groupings, and
// text reports.
var DefaultLayout = []string{"individual", "by_condition", "by_timepoint", "reports"}

// Manager validates the input directory and prepares the output layout for a
// batch run. Preparation is idempotent: running twice against the same output
// directory never fails because the layout already exists.
type Manager struct {
	layout []string
}

// Option customizes a Manager.
type Option func(*Manager)

// WithLayout replaces the subdirectories created under each job's output
// namespace. Passing no names disables per-job layout preparation entirely.
func WithLayout(subdirs ...string) Option {
	return func(m *Manager) {
		m.layout = subdirs
	}
}

// New creates a Manager that prepares DefaultLayout under each job namespace.
func New(opts ...Option) *Manager {
	m := &Manager{layout: DefaultLayout}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ValidateInput checks that dir exists, is a directory, and holds at least one
// entry. Jobs only read from the input directory, so an empty one means every
// analysis would silently produce nothing.
func (m *Manager) ValidateInput(dir string) error {
	if dir == "" {
		return apperrors.InvalidInputDirectory(dir, "path is empty")
	}
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return apperrors.InvalidInputDirectory(dir, "does not exist")
	}
	if err != nil {
		return apperrors.InvalidInputDirectory(dir, err.Error())
	}
	if !info.IsDir() {
		return apperrors.InvalidInputDirectory(dir, "not a directory")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return apperrors.InvalidInputDirectory(dir, err.Error())
	}
	if len(entries) == 0 {
		return apperrors.InvalidInputDirectory(dir, "contains no input files")
	}
	return nil
}

// PrepareOutputs creates base, one directory per subpath, and the configured
// layout under each subpath. Existing directories are left untouched.
func (m *Manager) PrepareOutputs(base string, subpaths []string) error {
	if base == "" {
		return apperrors.InvalidOutputDirectory(base, os.ErrInvalid)
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return apperrors.InvalidOutputDirectory(base, err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return apperrors.InvalidOutputDirectory(base, err)
	}
	for _, sub := range subpaths {
		jobDir := filepath.Join(abs, sub)
		if err := os.MkdirAll(jobDir, 0o750); err != nil {
			return apperrors.InvalidOutputDirectory(jobDir, err)
		}
		for _, name := range m.layout {
			if err := os.MkdirAll(filepath.Join(jobDir, name), 0o750); err != nil {
				return apperrors.InvalidOutputDirectory(jobDir, err)
			}
		}
	}
	return nil
}

var _ batch.Workspace = (*Manager)(nil)
