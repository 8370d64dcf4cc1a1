package display

import (
	"strings"

	"github.com/researchos/dataset-builder/errors"
)

// FormatError renders err as "[Class] message" followed by one line per
// attached hint.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(errors.Classify(err))
	b.WriteString("] ")
	b.WriteString(err.Error())
	for _, hint := range errors.GetAllHints(err) {
		b.WriteString("\n  hint: ")
		b.WriteString(hint)
	}
	return b.String()
}
