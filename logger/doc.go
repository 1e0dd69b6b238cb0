// Package logger provides structured logging for the batch orchestrator
// using zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.Get("coordinator")
//	log.Info("batch finished", logger.Fields(logger.FieldRunID, id))
package logger
