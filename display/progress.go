package display

import (
	"fmt"
	"io"
	"sort"

	"github.com/pterm/pterm"
)

// ProgressEmitter receives build progress.
//
// Implementations include:
//   - CLIEmitter: pterm output on a terminal
//   - NopEmitter: discards everything (JSON mode)
type ProgressEmitter interface {
	EmitStage(stage string, message string)
	EmitComplete(summary map[string]interface{})
	EmitError(stage string, err error)
	EmitInfo(message string)
}

// CLIEmitter prints progress with pterm.
type CLIEmitter struct {
	out       io.Writer
	verbosity int
}

// NewCLIEmitter creates a CLI progress emitter writing to out.
func NewCLIEmitter(out io.Writer, verbosity int) *CLIEmitter {
	return &CLIEmitter{out: out, verbosity: verbosity}
}

// EmitStage prints a stage line. Stages are shown from -v upwards.
func (e *CLIEmitter) EmitStage(stage string, message string) {
	if e.verbosity < 1 {
		return
	}
	pterm.Fprintln(e.out, fmt.Sprintf("%s %s: %s", pterm.Gray("→"), pterm.LightCyan(stage), message))
}

// EmitComplete prints the success line, plus the summary with -v.
func (e *CLIEmitter) EmitComplete(summary map[string]interface{}) {
	pterm.Fprintln(e.out, pterm.Success.Sprint("Successfully built the dataset!"))
	if e.verbosity < 1 {
		return
	}
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pterm.Fprintln(e.out, fmt.Sprintf("  %s: %v", k, summary[k]))
	}
}

// EmitError prints an error with its taxonomy class and hints.
func (e *CLIEmitter) EmitError(stage string, err error) {
	pterm.Fprintln(e.out, pterm.Error.Sprintf("Error in %s: %s", stage, FormatError(err)))
}

// EmitInfo prints an informational message with -v.
func (e *CLIEmitter) EmitInfo(message string) {
	if e.verbosity >= 1 {
		pterm.Fprintln(e.out, pterm.Info.Sprint(message))
	}
}

// NopEmitter discards progress.
type NopEmitter struct{}

func (NopEmitter) EmitStage(string, string)            {}
func (NopEmitter) EmitComplete(map[string]interface{}) {}
func (NopEmitter) EmitError(string, error)             {}
func (NopEmitter) EmitInfo(string)                     {}
