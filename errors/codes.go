package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Pre-launch errors (fatal: the batch never starts)
const (
	// ErrCodeInvalidConfiguration indicates the batch request cannot be
	// executed as given.
	ErrCodeInvalidConfiguration ErrorCode = "INVALID_CONFIGURATION"
	// ErrCodeInvalidInputDirectory indicates the input directory is missing
	// or unusable.
	ErrCodeInvalidInputDirectory ErrorCode = "INVALID_INPUT_DIRECTORY"
	// ErrCodeInvalidOutputDirectory indicates the output layout could not be
	// prepared.
	ErrCodeInvalidOutputDirectory ErrorCode = "INVALID_OUTPUT_DIRECTORY"
	// ErrCodeUnknownJobType indicates a requested job id is not registered.
	ErrCodeUnknownJobType ErrorCode = "UNKNOWN_JOB_TYPE"
)

// Job-scoped errors (captured per outcome, never abort the batch)
const (
	// ErrCodeJobFailure indicates a single job failed.
	ErrCodeJobFailure ErrorCode = "JOB_FAILURE"
	// ErrCodeExecutorPanic indicates an executor raised instead of returning.
	ErrCodeExecutorPanic ErrorCode = "EXECUTOR_PANIC"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeUnknown indicates an error that carries no code of its own.
	ErrCodeUnknown ErrorCode = "UNKNOWN"
)

var fatalCodes = map[ErrorCode]bool{
	ErrCodeInvalidConfiguration:   true,
	ErrCodeInvalidInputDirectory:  true,
	ErrCodeInvalidOutputDirectory: true,
	ErrCodeUnknownJobType:         true,
	ErrCodeInternal:               true,
	ErrCodeJobFailure:             false,
	ErrCodeExecutorPanic:          false,
}

// IsFatalCode returns true if the error code aborts the batch before any
// job launches.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
