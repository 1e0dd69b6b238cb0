// Package validation provides input validation for batch configuration
// and job manifests.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Failures are reported as
// INVALID_CONFIGURATION errors so a bad request is refused before any job
// launches.
//
// # Struct Tag Validation
//
//	type JobManifest struct {
//	    ID      string   `validate:"required,min=2"`
//	    Command []string `validate:"required,min=1"`
//	}
//	err := validation.Validate(m)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("input_dir", cfg.InputDir).Min("max_concurrent", cfg.MaxConcurrent, 1)
//	err := v.Validate()
package validation
