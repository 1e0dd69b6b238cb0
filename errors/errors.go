// Package errors provides unified error handling for the batch orchestrator.
// It implements structured error types with error codes, fatality
// classification, and cause chaining compatible with the standard library
// errors package.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// BatchError is the unified application error type.
type BatchError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Fatal indicates the error aborts the batch before any job launches.
	// Non-fatal errors are scoped to a single job outcome.
	Fatal bool `json:"fatal"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *BatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *BatchError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *BatchError) WithCause(cause error) *BatchError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *BatchError) WithDetails(details map[string]any) *BatchError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *BatchError) WithDetail(key string, value any) *BatchError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new BatchError with automatic fatality detection.
func New(code ErrorCode, message string) *BatchError {
	return &BatchError{
		Code:    code,
		Message: message,
		Fatal:   IsFatalCode(code),
	}
}

// --- Common Error Constructors ---

// InvalidConfiguration creates a new BatchError for a batch request that
// cannot be executed as given.
func InvalidConfiguration(reason string) *BatchError {
	return &BatchError{
		Code: ErrCodeInvalidConfiguration, Message: reason,
		Fatal: true,
	}
}

// InvalidInputDirectory creates a new BatchError for a missing or unusable
// input directory.
func InvalidInputDirectory(dir, reason string) *BatchError {
	return &BatchError{
		Code: ErrCodeInvalidInputDirectory, Message: fmt.Sprintf("input directory %s: %s", dir, reason),
		Fatal:   true,
		Details: map[string]any{"dir": dir},
	}
}

// InvalidOutputDirectory creates a new BatchError for an output layout that
// could not be prepared.
func InvalidOutputDirectory(dir string, cause error) *BatchError {
	return &BatchError{
		Code: ErrCodeInvalidOutputDirectory, Message: fmt.Sprintf("output directory %s could not be prepared", dir),
		Fatal:   true,
		Details: map[string]any{"dir": dir}, Cause: cause,
	}
}

// UnknownJobType creates a new BatchError for a job id that has not been
// registered.
func UnknownJobType(id string, known []string) *BatchError {
	return &BatchError{
		Code: ErrCodeUnknownJobType, Message: fmt.Sprintf("unknown job type %q (known: %s)", id, strings.Join(known, ", ")),
		Fatal:   true,
		Details: map[string]any{"id": id, "known": known},
	}
}

// JobFailure creates a new BatchError for an executor that raised a failure.
// It is never fatal: the coordinator captures it into the job's outcome and
// the rest of the batch keeps going.
func JobFailure(jobID string, cause error) *BatchError {
	return &BatchError{
		Code: ErrCodeJobFailure, Message: fmt.Sprintf("job %s failed", jobID),
		Fatal:   false,
		Details: map[string]any{"job": jobID}, Cause: cause,
	}
}

// JobReportedFailure creates a new BatchError for an executor that returned
// unsuccessfully without raising an error of its own.
func JobReportedFailure(jobID string) *BatchError {
	return &BatchError{
		Code: ErrCodeJobFailure, Message: fmt.Sprintf("job %s reported failure", jobID),
		Fatal:   false,
		Details: map[string]any{"job": jobID},
	}
}

// Internal creates a new BatchError for an unexpected internal error.
func Internal(cause error) *BatchError {
	return &BatchError{
		Code: ErrCodeInternal, Message: "an unexpected error occurred",
		Fatal: true, Cause: cause,
	}
}

// --- Inspection Helpers ---

// Wrap converts an arbitrary error into a *BatchError. Errors that already
// carry a BatchError anywhere in their chain are returned as-is; anything
// else becomes an internal error with the original as cause. Wrap(nil)
// returns nil.
func Wrap(err error) *BatchError {
	if err == nil {
		return nil
	}
	if be, ok := AsBatchError(err); ok {
		return be
	}
	return Internal(err)
}

// IsBatchError checks if an error carries a BatchError.
func IsBatchError(err error) bool {
	var be *BatchError
	return stderrors.As(err, &be)
}

// AsBatchError extracts a *BatchError from an error chain.
func AsBatchError(err error) (*BatchError, bool) {
	var be *BatchError
	if stderrors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsFatal reports whether err (or anything it wraps) aborts the batch.
// Unrecognized errors are treated as fatal: only errors explicitly scoped
// to a single job are safe to capture and continue past.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if be, ok := AsBatchError(err); ok {
		return be.Fatal
	}
	return true
}

// CodeOf returns the error code carried by err, or ErrCodeUnknown when err
// carries no BatchError.
func CodeOf(err error) ErrorCode {
	if be, ok := AsBatchError(err); ok {
		return be.Code
	}
	return ErrCodeUnknown
}
