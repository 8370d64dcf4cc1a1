// Package config loads and validates dataset configuration files.
//
// A dataset config names the data objects table, the column→level hierarchy
// and a few reader options:
//
//	data_folder_path = "data"
//	data_objects_file_paths = "{Subject}/{Trial}.mat"
//	data_objects_table_path = "objects.csv"
//	num_header_rows = 1
//	other_columns = []
//	data_objects_hierarchy = [
//	  { subject_col = "Subject" },
//	  { trial_col = "Trial" },
//	]
//
// Keys not listed here are kept in Config.Extra.
package config

import (
	"github.com/researchos/dataset-builder/errors"
	"github.com/researchos/dataset-builder/level"
)

// Configuration keys
const (
	KeyDataFolderPath       = "data_folder_path"
	KeyDataObjectsHierarchy = "data_objects_hierarchy"
	KeyDataObjectsFilePaths = "data_objects_file_paths"
	KeyDataObjectsTablePath = "data_objects_table_path"
	KeyNumHeaderRows        = "num_header_rows"
	KeyOtherColumns         = "other_columns"
	KeyDelimiter            = "delimiter"
	KeyLazyQuotes           = "lazy_quotes"
)

var knownKeys = map[string]bool{
	KeyDataFolderPath:       true,
	KeyDataObjectsHierarchy: true,
	KeyDataObjectsFilePaths: true,
	KeyDataObjectsTablePath: true,
	KeyNumHeaderRows:        true,
	KeyOtherColumns:         true,
	KeyDelimiter:            true,
	KeyLazyQuotes:           true,
}

// RequiredKeys must be present in every dataset config.
var RequiredKeys = []string{
	KeyDataFolderPath,
	KeyDataObjectsHierarchy,
	KeyDataObjectsFilePaths,
	KeyDataObjectsTablePath,
	KeyNumHeaderRows,
	KeyOtherColumns,
}

// Config represents a dataset configuration
type Config struct {
	DataFolderPath       string              `mapstructure:"data_folder_path"`
	DataObjectsHierarchy []map[string]string `mapstructure:"data_objects_hierarchy"` // one {column = level} per tier, root first
	DataObjectsFilePaths string              `mapstructure:"data_objects_file_paths"`
	DataObjectsTablePath string              `mapstructure:"data_objects_table_path"`
	NumHeaderRows        int                 `mapstructure:"num_header_rows"` // includes the column header row
	OtherColumns         []string            `mapstructure:"other_columns"`

	Delimiter  string `mapstructure:"delimiter"`   // single character (default ",")
	LazyQuotes bool   `mapstructure:"lazy_quotes"` // tolerate stray quotes in cells (default true)

	// Extra holds any keys not recognised above, with their case kept
	Extra map[string]interface{} `mapstructure:"-"`

	// Source is the file the config was loaded from, empty for FromMap
	Source string `mapstructure:"-"`
}

// Bindings returns the hierarchy as column→level pairs in hierarchy order.
func (c *Config) Bindings() ([]level.Binding, error) {
	out := make([]level.Binding, 0, len(c.DataObjectsHierarchy))
	for i, entry := range c.DataObjectsHierarchy {
		if len(entry) != 1 {
			return nil, errors.Wrapf(errors.ErrConfigInvalid,
				"%s entry %d must map exactly one column to a level, got %d pairs",
				KeyDataObjectsHierarchy, i, len(entry))
		}
		for column, name := range entry {
			out = append(out, level.Binding{Column: column, Level: name})
		}
	}
	return out, nil
}

// Hierarchy builds the level hierarchy declared by the config.
func (c *Config) Hierarchy() (*level.Hierarchy, error) {
	bindings, err := c.Bindings()
	if err != nil {
		return nil, err
	}
	return level.NewColumnHierarchy(bindings)
}

// DelimiterRune returns the field delimiter, defaulting to a comma.
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ','
}

// AsMap returns the config as a flat key→value map, extras included.
func (c *Config) AsMap() map[string]interface{} {
	m := make(map[string]interface{}, len(c.Extra)+8)
	for k, v := range c.Extra {
		m[k] = v
	}

	hierarchy := make([]map[string]interface{}, len(c.DataObjectsHierarchy))
	for i, entry := range c.DataObjectsHierarchy {
		hierarchy[i] = make(map[string]interface{}, len(entry))
		for k, v := range entry {
			hierarchy[i][k] = v
		}
	}
	otherColumns := c.OtherColumns
	if otherColumns == nil {
		otherColumns = []string{}
	}

	m[KeyDataFolderPath] = c.DataFolderPath
	m[KeyDataObjectsHierarchy] = hierarchy
	m[KeyDataObjectsFilePaths] = c.DataObjectsFilePaths
	m[KeyDataObjectsTablePath] = c.DataObjectsTablePath
	m[KeyNumHeaderRows] = c.NumHeaderRows
	m[KeyOtherColumns] = otherColumns
	m[KeyDelimiter] = c.Delimiter
	m[KeyLazyQuotes] = c.LazyQuotes
	return m
}
