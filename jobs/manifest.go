package jobs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/kbukum/grangerbatch/errors"
	"github.com/kbukum/grangerbatch/util"
	"github.com/kbukum/grangerbatch/validation"
)

// Manifest overrides or extends the builtin job catalog from a YAML file:
//
//	jobs:
//	  matrix:
//	    command: ["python3", "run_matrix.py", "--input", "{input}", "--output", "{output}"]
//	  bands:
//	    name: Band Power Visualizations
//	    description: Per-band connectivity summaries
//	    output_subpath: bands
//	    command: ["python3", "run_bands.py", "{input}", "{output}"]
type Manifest struct {
	Jobs map[string]Entry `yaml:"jobs"`
}

// Entry is one manifest job. For ids already in the catalog every field is
// optional and overrides the builtin; new ids must carry a command and an
// output subpath.
type Entry struct {
	Name          string   `yaml:"name,omitempty"`
	Description   string   `yaml:"description,omitempty"`
	OutputSubpath string   `yaml:"output_subpath,omitempty"`
	Command       []string `yaml:"command,omitempty"`
	Dir           string   `yaml:"dir,omitempty"`
	Env           []string `yaml:"env,omitempty"`
}

// jobIDPattern constrains manifest job ids to flag-safe short names.
const jobIDPattern = `^[a-z][a-z0-9_-]*$`

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.InvalidConfiguration(fmt.Sprintf("manifest %s: %v", path, err))
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, apperrors.InvalidConfiguration(fmt.Sprintf("manifest %s: %v", path, err))
	}
	return &m, nil
}

// Apply merges the manifest over the definitions: matching ids are
// overridden field by field, unknown ids are appended as new definitions in
// lexical order so repeated loads produce the same catalog.
func (m *Manifest) Apply(defs []Definition) ([]Definition, error) {
	if m == nil || len(m.Jobs) == 0 {
		return defs, nil
	}

	out := make([]Definition, len(defs))
	copy(out, defs)
	known := make(map[string]int, len(out))
	for i, d := range out {
		known[d.ID] = i
	}

	ids := make([]string, 0, len(m.Jobs))
	for id := range m.Jobs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, rawID := range ids {
		entry := m.Jobs[rawID]
		id := util.SanitizeString(rawID)
		idx, exists := known[id]
		if err := entry.validate(id, exists); err != nil {
			return nil, err
		}
		if exists {
			out[idx] = entry.merge(out[idx])
		} else {
			out = append(out, entry.definition(id))
		}
	}
	return out, nil
}

func (e Entry) validate(id string, exists bool) error {
	v := validation.New().
		Required("id", id).
		Pattern("id", id, jobIDPattern)
	if !exists {
		v.Custom(len(e.Command) > 0, "command", "is required for new jobs").
			Required("output_subpath", e.OutputSubpath)
	}
	if e.OutputSubpath != "" {
		v.Custom(!filepath.IsAbs(e.OutputSubpath), "output_subpath", "must be relative").
			Custom(!strings.Contains(e.OutputSubpath, ".."), "output_subpath", "must not traverse upward")
	}
	if batchErr := v.Validate(); batchErr != nil {
		return batchErr
	}
	return nil
}

// merge overlays the entry's set fields onto an existing definition.
func (e Entry) merge(d Definition) Definition {
	if e.Name != "" {
		d.Name = util.SanitizeString(e.Name)
	}
	if e.Description != "" {
		d.Description = util.SanitizeString(e.Description)
	}
	if e.OutputSubpath != "" {
		d.OutputSubpath = e.OutputSubpath
	}
	if len(e.Command) > 0 {
		d.Command = e.Command
	}
	if e.Dir != "" {
		d.Dir = e.Dir
	}
	if len(e.Env) > 0 {
		d.Env = e.Env
	}
	return d
}

// definition builds a brand-new definition from the entry.
func (e Entry) definition(id string) Definition {
	d := Definition{
		ID:            id,
		Name:          util.SanitizeString(e.Name),
		Description:   util.SanitizeString(e.Description),
		OutputSubpath: e.OutputSubpath,
		Command:       e.Command,
		Dir:           e.Dir,
		Env:           e.Env,
	}
	if d.Name == "" {
		d.Name = id
	}
	return d
}
