package jobs

import (
	"github.com/kbukum/grangerbatch/batch"
)

// Builtin job ids.
const (
	Matrix   = "matrix"
	Network  = "network"
	Nodal    = "nodal"
	Pairwise = "pairwise"
	Global   = "global"
)

// Definition describes one analysis job: its identity, the output namespace
// it writes under, and the command that performs it.
type Definition struct {
	// ID is the stable identifier used in requests and flags.
	ID string
	// Name is the human-readable display name.
	Name string
	// Description is a one-line summary for listings.
	Description string
	// OutputSubpath is the directory namespace this job writes under,
	// relative to the batch output directory.
	OutputSubpath string
	// Command is the argv that performs the analysis. {input} and {output}
	// placeholders are substituted with the run's directories.
	Command []string
	// Dir is the working directory for the command. Empty means inherit.
	Dir string
	// Env is additional environment (key=value) for the command.
	Env []string
}

// Builtins returns the five analysis definitions in canonical launch order.
// Each default command drives the corresponding analysis script; a manifest
// can override the command without touching the catalog.
func Builtins() []Definition {
	return []Definition{
		{
			ID:            Matrix,
			Name:          "Matrix Visualizations",
			Description:   "Connectivity matrix heatmaps with consistent scaling",
			OutputSubpath: "matrices",
			Command:       defaultCommand("batch_matrix_processor.py"),
		},
		{
			ID:            Network,
			Name:          "Network Visualizations",
			Description:   "Network graph visualizations with consistent scaling",
			OutputSubpath: "networks",
			Command:       defaultCommand("batch_network_processor.py"),
		},
		{
			ID:            Nodal,
			Name:          "Nodal Visualizations",
			Description:   "Nodal metric bar charts with consistent scaling",
			OutputSubpath: "nodals",
			Command:       defaultCommand("batch_nodal_processor.py"),
		},
		{
			ID:            Pairwise,
			Name:          "Pairwise Visualizations",
			Description:   "Pairwise connection strength plots with consistent scaling",
			OutputSubpath: "pairwise",
			Command:       defaultCommand("batch_pairwise_processor.py"),
		},
		{
			ID:            Global,
			Name:          "Global Metrics Visualizations",
			Description:   "Global metric bar charts with consistent scaling",
			OutputSubpath: "global",
			Command:       defaultCommand("batch_global_processor.py"),
		},
	}
}

func defaultCommand(script string) []string {
	return []string{"python3", script, "--input", PlaceholderInput, "--output", PlaceholderOutput}
}

// JobType binds the definition to an executor, producing a registrable job
// type.
func (d Definition) JobType(exec batch.Executor) batch.JobType {
	return batch.JobType{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		OutputSubpath: d.OutputSubpath,
		Exec:          exec,
	}
}

// BuildRegistry registers every definition, binding it to an executor via
// bind. A nil bind attaches a plain CommandExecutor for each definition.
func BuildRegistry(defs []Definition, bind func(Definition) batch.Executor) *batch.Registry {
	if bind == nil {
		bind = func(d Definition) batch.Executor { return NewCommandExecutor(d) }
	}
	reg := batch.NewRegistry()
	for _, d := range defs {
		reg.Register(d.JobType(bind(d)))
	}
	return reg
}
