package config

import (
	"unicode/utf8"

	"github.com/researchos/dataset-builder/errors"
)

// Validate checks that the configuration is structurally usable.
// Every failure wraps errors.ErrConfigInvalid.
func (c *Config) Validate() error {
	if len(c.DataObjectsHierarchy) == 0 {
		return errors.Wrapf(errors.ErrConfigInvalid, "%s must declare at least one level", KeyDataObjectsHierarchy)
	}

	// Entry shape, empty names and duplicates
	if _, err := c.Hierarchy(); err != nil {
		return err
	}

	if c.NumHeaderRows < 1 {
		return errors.Wrapf(errors.ErrConfigInvalid, "%s must be >= 1, got %d", KeyNumHeaderRows, c.NumHeaderRows)
	}

	if c.DataObjectsTablePath == "" {
		return errors.Wrapf(errors.ErrConfigInvalid, "%s cannot be empty", KeyDataObjectsTablePath)
	}

	if c.Delimiter != "" {
		r, size := utf8.DecodeRuneInString(c.Delimiter)
		if size != len(c.Delimiter) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
			return errors.Wrapf(errors.ErrConfigInvalid, "%s must be a single character other than a quote or newline, got %q", KeyDelimiter, c.Delimiter)
		}
	}

	return nil
}
