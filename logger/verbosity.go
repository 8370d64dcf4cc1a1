package logger

import "go.uber.org/zap/zapcore"

// Verbosity is the count of -v flags given on the command line. Above
// VerbosityDebug zap has no finer level, so the extra detail (per-row
// ingestion events, mapping dumps) is gated with ShouldLogTrace and
// ShouldLogAll at the call site:
//
//	if logger.ShouldLogTrace(verbosity) {
//	    log.Debugw("Row ingested", logger.FieldRow, n, "entities", names)
//	}
const (
	VerbosityUser  = 0 // results and errors only
	VerbosityInfo  = 1 // -v: build phases and counts
	VerbosityDebug = 2 // -vv: state transitions, resolved keys
	VerbosityTrace = 3 // -vvv: per-row ingestion events
	VerbosityAll   = 4 // -vvvv: nested mapping dumps
)

var levelNames = [...]string{
	VerbosityUser:  "User",
	VerbosityInfo:  "Info (-v)",
	VerbosityDebug: "Debug (-vv)",
	VerbosityTrace: "Trace (-vvv)",
	VerbosityAll:   "All (-vvvv)",
}

// VerbosityToLevel maps a -v count to the zap level: warn with no flags,
// info with -v, debug from -vv on.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// ShouldLogTrace reports -vvv or more.
func ShouldLogTrace(verbosity int) bool {
	return verbosity >= VerbosityTrace
}

// ShouldLogAll reports -vvvv or more.
func ShouldLogAll(verbosity int) bool {
	return verbosity >= VerbosityAll
}

// LevelName returns a human-readable name for a verbosity count.
func LevelName(verbosity int) string {
	switch {
	case verbosity < 0:
		return "Unknown"
	case verbosity > VerbosityAll:
		return "All (-vvvv+)"
	default:
		return levelNames[verbosity]
	}
}
