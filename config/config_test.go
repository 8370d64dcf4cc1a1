package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchos/dataset-builder/errors"
	dstest "github.com/researchos/dataset-builder/internal/testing"
	"github.com/researchos/dataset-builder/level"
)

const validTOML = `
data_folder_path = "data"
data_objects_file_paths = "{Subject}/{Trial}.mat"
data_objects_table_path = "objects.csv"
num_header_rows = 1
other_columns = ["Notes"]
project = "gait"
data_objects_hierarchy = [
  { SubjectName = "Subject" },
  { TrialName = "Trial" },
]
`

func TestLoadFromFile_TOML(t *testing.T) {
	path := dstest.WriteFile(t, "dataset.toml", validTOML)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	dir := filepath.Dir(path)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataFolderPath)
	assert.Equal(t, filepath.Join(dir, "objects.csv"), cfg.DataObjectsTablePath)
	assert.Equal(t, "{Subject}/{Trial}.mat", cfg.DataObjectsFilePaths)
	assert.Equal(t, 1, cfg.NumHeaderRows)
	assert.Equal(t, []string{"Notes"}, cfg.OtherColumns)
	assert.Equal(t, path, cfg.Source)

	// Column names keep their case
	assert.Equal(t, []map[string]string{
		{"SubjectName": "Subject"},
		{"TrialName": "Trial"},
	}, cfg.DataObjectsHierarchy)

	// Defaults and pass-through keys
	assert.Equal(t, ',', cfg.DelimiterRune())
	assert.True(t, cfg.LazyQuotes)
	assert.Equal(t, "gait", cfg.Extra["project"])
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := dstest.WriteFile(t, "dataset.yaml", `
data_folder_path: /srv/data
data_objects_file_paths: ""
data_objects_table_path: /srv/objects.tsv
num_header_rows: 3
other_columns: []
delimiter: "\t"
data_objects_hierarchy:
  - Subject: Subject
  - Trial: Trial
  - Session: Session
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/objects.tsv", cfg.DataObjectsTablePath, "absolute paths are kept")
	assert.Equal(t, 3, cfg.NumHeaderRows)
	assert.Equal(t, '\t', cfg.DelimiterRune())

	h, err := cfg.Hierarchy()
	require.NoError(t, err)
	assert.Equal(t, []string{"Subject", "Trial", "Session"}, h.Names())
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing required key",
			content: `
data_folder_path = "data"
data_objects_table_path = "objects.csv"
num_header_rows = 1
other_columns = []
data_objects_hierarchy = [{ Subject = "Subject" }]
`,
		},
		{
			name: "mistyped header rows",
			content: `
data_folder_path = "data"
data_objects_file_paths = ""
data_objects_table_path = "objects.csv"
num_header_rows = "many"
other_columns = []
data_objects_hierarchy = [{ Subject = "Subject" }]
`,
		},
		{
			name: "boolean header rows",
			content: `
data_folder_path = "data"
data_objects_file_paths = ""
data_objects_table_path = "objects.csv"
num_header_rows = true
other_columns = []
data_objects_hierarchy = [{ Subject = "Subject" }]
`,
		},
		{
			name: "quoted header rows",
			content: `
data_folder_path = "data"
data_objects_file_paths = ""
data_objects_table_path = "objects.csv"
num_header_rows = "2"
other_columns = []
data_objects_hierarchy = [{ Subject = "Subject" }]
`,
		},
		{
			name: "numeric data folder",
			content: `
data_folder_path = 42
data_objects_file_paths = ""
data_objects_table_path = "objects.csv"
num_header_rows = 1
other_columns = []
data_objects_hierarchy = [{ Subject = "Subject" }]
`,
		},
		{
			name: "other columns not a list",
			content: `
data_folder_path = "data"
data_objects_file_paths = ""
data_objects_table_path = "objects.csv"
num_header_rows = 1
other_columns = "Notes"
data_objects_hierarchy = [{ Subject = "Subject" }]
`,
		},
		{
			name: "zero header rows",
			content: `
data_folder_path = "data"
data_objects_file_paths = ""
data_objects_table_path = "objects.csv"
num_header_rows = 0
other_columns = []
data_objects_hierarchy = [{ Subject = "Subject" }]
`,
		},
		{
			name: "hierarchy entry with two pairs",
			content: `
data_folder_path = "data"
data_objects_file_paths = ""
data_objects_table_path = "objects.csv"
num_header_rows = 1
other_columns = []
data_objects_hierarchy = [{ Subject = "Subject", Trial = "Trial" }]
`,
		},
		{
			name: "hierarchy level is not a string",
			content: `
data_folder_path = "data"
data_objects_file_paths = ""
data_objects_table_path = "objects.csv"
num_header_rows = 1
other_columns = []
data_objects_hierarchy = [{ Subject = 3 }]
`,
		},
		{
			name: "duplicate level",
			content: `
data_folder_path = "data"
data_objects_file_paths = ""
data_objects_table_path = "objects.csv"
num_header_rows = 1
other_columns = []
data_objects_hierarchy = [{ a = "Subject" }, { b = "Subject" }]
`,
		},
		{
			name:    "not toml",
			content: `data_folder_path = [`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := dstest.WriteFile(t, "dataset.toml", tt.content)
			_, err := LoadFromFile(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrConfigInvalid), "got %v", err)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfigInvalid))
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	path := dstest.WriteFile(t, "dataset.toml", validTOML)
	t.Setenv("DATASET_NUM_HEADER_ROWS", "4")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.NumHeaderRows)
}

func TestLoadFromFile_EnvOverrideInvalid(t *testing.T) {
	path := dstest.WriteFile(t, "dataset.toml", validTOML)
	t.Setenv("DATASET_NUM_HEADER_ROWS", "four")

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfigInvalid))
}

func TestLoadFromFile_ExtraKeysKeepCase(t *testing.T) {
	path := dstest.WriteFile(t, "dataset.toml", validTOML+`
ProjectName = "Gait"
[LabNotes]
Operator = "Kim"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Gait", cfg.Extra["ProjectName"])
	assert.Equal(t, "gait", cfg.Extra["project"])
	assert.Equal(t, map[string]interface{}{"Operator": "Kim"}, cfg.Extra["LabNotes"])
	assert.NotContains(t, cfg.Extra, "projectname")
	assert.NotContains(t, cfg.Extra, KeyDataFolderPath)
}

func TestLoadFromFile_ExtraKeysYAML(t *testing.T) {
	path := dstest.WriteFile(t, "dataset.yaml", `
data_folder_path: data
data_objects_file_paths: ""
data_objects_table_path: objects.csv
num_header_rows: 1
other_columns: []
data_objects_hierarchy:
  - SubjectName: Subject
ProjectName: Gait
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"ProjectName": "Gait"}, cfg.Extra)
}

func TestFromMap_ExtraKeysKeepCase(t *testing.T) {
	cfg, err := FromMap(map[string]interface{}{
		"data_folder_path":        "data",
		"data_objects_hierarchy":  []map[string]string{{"Subject": "Subject"}},
		"data_objects_file_paths": "",
		"data_objects_table_path": "objects.csv",
		"num_header_rows":         1,
		"other_columns":           []string{},
		"ProjectName":             "Gait",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"ProjectName": "Gait"}, cfg.Extra)
}

func TestFromMap_Mistyped(t *testing.T) {
	_, err := FromMap(map[string]interface{}{
		"data_folder_path":        "data",
		"data_objects_hierarchy":  []map[string]string{{"Subject": "Subject"}},
		"data_objects_file_paths": "",
		"data_objects_table_path": "objects.csv",
		"num_header_rows":         "2",
		"other_columns":           []string{},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfigInvalid))
}

func TestFromMap(t *testing.T) {
	cfg, err := FromMap(map[string]interface{}{
		"data_folder_path":        "data",
		"data_objects_hierarchy":  []map[string]string{{"Subject": "Subject"}, {"Trial": "Trial"}},
		"data_objects_file_paths": "",
		"data_objects_table_path": "objects.csv",
		"num_header_rows":         2,
		"other_columns":           []string{},
		"operator":                "kim",
	})
	require.NoError(t, err)

	assert.Equal(t, "objects.csv", cfg.DataObjectsTablePath, "FromMap keeps paths as given")
	assert.Equal(t, 2, cfg.NumHeaderRows)
	assert.Equal(t, "kim", cfg.Extra["operator"])

	bindings, err := cfg.Bindings()
	require.NoError(t, err)
	assert.Equal(t, []level.Binding{
		{Column: "Subject", Level: "Subject"},
		{Column: "Trial", Level: "Trial"},
	}, bindings)
}

func TestFromMap_MissingKeys(t *testing.T) {
	_, err := FromMap(map[string]interface{}{
		"data_objects_table_path": "objects.csv",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfigInvalid))
	assert.Contains(t, err.Error(), "num_header_rows")
}

func TestLoadWithViper_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyDataFolderPath, "")
	v.Set(KeyDataObjectsHierarchy, []map[string]string{{"Subject": "Subject"}})
	v.Set(KeyDataObjectsFilePaths, "")
	v.Set(KeyDataObjectsTablePath, "t.csv")
	v.Set(KeyNumHeaderRows, 1)
	v.Set(KeyOtherColumns, []string{})

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.Equal(t, ",", cfg.Delimiter)
	assert.True(t, cfg.LazyQuotes)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			DataObjectsHierarchy: []map[string]string{{"Subject": "Subject"}},
			DataObjectsTablePath: "objects.csv",
			NumHeaderRows:        1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty hierarchy", func(c *Config) { c.DataObjectsHierarchy = nil }, true},
		{"empty column", func(c *Config) { c.DataObjectsHierarchy = []map[string]string{{"": "Subject"}} }, true},
		{"duplicate column", func(c *Config) {
			c.DataObjectsHierarchy = []map[string]string{{"id": "Subject"}, {"id": "Trial"}}
		}, true},
		{"negative header rows", func(c *Config) { c.NumHeaderRows = -1 }, true},
		{"empty table path", func(c *Config) { c.DataObjectsTablePath = "" }, true},
		{"tab delimiter", func(c *Config) { c.Delimiter = "\t" }, false},
		{"multi-char delimiter", func(c *Config) { c.Delimiter = ";;" }, true},
		{"quote delimiter", func(c *Config) { c.Delimiter = `"` }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrConfigInvalid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMarshal(t *testing.T) {
	cfg := Template([]level.Binding{{Column: "Subject", Level: "Subject"}}, "objects.csv")
	cfg.Extra = map[string]interface{}{"project": "gait"}

	for _, format := range []string{FormatTOML, FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			data, err := Marshal(cfg, format)
			require.NoError(t, err)
			assert.Contains(t, string(data), "data_objects_table_path")
			assert.Contains(t, string(data), "project")
		})
	}

	_, err := Marshal(cfg, "ini")
	assert.Error(t, err)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dataset.toml")
	cfg := Template([]level.Binding{
		{Column: "SubjectName", Level: "Subject"},
		{Column: "TrialName", Level: "Trial"},
	}, "objects.csv")

	require.NoError(t, WriteFile(cfg, path, false))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.DataObjectsHierarchy, loaded.DataObjectsHierarchy)
	assert.Equal(t, filepath.Join(dir, "objects.csv"), loaded.DataObjectsTablePath)

	// Refuses to clobber without overwrite
	assert.Error(t, WriteFile(cfg, path, false))

	// Overwrite rotates a backup
	require.NoError(t, WriteFile(cfg, path, true))
	_, err = os.Stat(path + ".back1")
	assert.NoError(t, err)
}
