// Package errors provides unified error handling for the batch orchestrator.
// It implements structured error types with error codes, fatality
// classification, and cause chaining compatible with the standard library
// errors package.
package errors
