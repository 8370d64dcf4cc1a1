package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldState     = "state"

	FieldDurationMS = "duration_ms"

	FieldError     = "error"
	FieldErrorType = "error_type"

	FieldCount = "count"
	FieldNodes = "nodes"
	FieldEdges = "edges"
	FieldRoots = "roots"
	FieldRows  = "rows"

	FieldFile   = "file"
	FieldRow    = "row"
	FieldColumn = "column"

	// Dataset-specific
	FieldLevel  = "level"
	FieldEntity = "entity"
	FieldDepth  = "depth"
	FieldKey    = "key"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Builder struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewBuilder() *Builder {
//	    return &Builder{
//	        logger: logger.ComponentLogger("dataset.builder"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	buildLogger := logger.ChildLogger(baseLogger, logger.FieldFile, cfg.TablePath)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
