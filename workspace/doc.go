// Package workspace manages the on-disk layout of a batch run.
//
// A Manager performs the two filesystem duties the batch coordinator
// delegates: validating that the input directory exists and holds data, and
// preparing the output tree before any job launches. Each job writes into its
// own subpath of the output directory, and under every subpath the Manager
// creates a standard analysis layout (individual results, condition and
// timepoint groupings, reports) so executors can assume it is present.
//
// Usage:
//
//	ws := workspace.New()
//	if err := ws.ValidateInput("input"); err != nil {
//		return err
//	}
//	if err := ws.PrepareOutputs("output", []string{"matrices", "networks"}); err != nil {
//		return err
//	}
//
// All failures are reported as fatal configuration errors carrying the
// offending path, so callers can surface them before launching work.
package workspace
