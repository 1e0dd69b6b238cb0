// Package jobs holds the analysis job catalog and the executors that run it.
//
// The builtin catalog covers the five connectivity analyses (matrix,
// network, nodal, pairwise, global), each with a display name, an output
// namespace, and a default command. A YAML manifest can override any
// builtin's command or add entirely new jobs:
//
//	defs := jobs.Builtins()
//	if manifest, err := jobs.LoadManifest("jobs.yml"); err == nil {
//		defs, err = manifest.Apply(defs)
//	}
//	registry := jobs.BuildRegistry(defs, nil)
//
// Commands run as subprocesses through CommandExecutor, with {input} and
// {output} placeholders substituted per run. Executors can be decorated with
// WithLogging, WithTracing, and WithMetrics.
package jobs
