package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWrapfSentinel(t *testing.T) {
	err := Wrapf(ErrMissingColumn, "column %q not in header", "Subject")

	assert.True(t, Is(err, ErrMissingColumn))
	assert.False(t, Is(err, ErrNotFound))
	assert.Equal(t, `column "Subject" not in header: missing column`, err.Error())
}

func TestWithHint(t *testing.T) {
	err := WithHint(Wrap(ErrUnknownLevel, "Session"), "configured levels: Subject, Trial")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "configured levels: Subject, Trial", hints[0])
	assert.True(t, Is(err, ErrUnknownLevel))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"config", Wrap(ErrConfigInvalid, "num_header_rows"), "ConfigInvalid"},
		{"source", Wrapf(ErrSourceNotFound, "%s", "table.csv"), "SourceNotFound"},
		{"column", Wrap(ErrMissingColumn, "Subject"), "MissingColumn"},
		{"depth", Wrap(ErrHierarchyDepthExceeded, "depth 3"), "HierarchyDepthExceeded"},
		{"parents", Wrap(ErrMultipleParents, "x"), "MultipleParentsError"},
		{"parent type", Wrap(ErrInvalidParentType, "x"), "InvalidParentTypeError"},
		{"level", Wrap(ErrUnknownLevel, "x"), "UnknownLevelError"},
		{"not found", NewNotFoundError("no %s", "match"), "NotFoundError"},
		{"double wrapped", Wrap(WithHint(Wrap(ErrNotFound, "a"), "h"), "b"), "NotFoundError"},
		{"unclassified", New("boom"), "Internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsNotFoundError(New("other")))
	assert.True(t, IsNotFoundError(NewNotFoundError("entity %s", "Nairobi")))
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
}

func ExampleWrapf() {
	err := Wrapf(ErrSourceNotFound, "table %s", "subjects.csv")
	fmt.Println(err)
	// Output: table subjects.csv: source not found
}
