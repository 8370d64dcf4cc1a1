package testing

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

// Byte-order mark some spreadsheet tools prepend to CSV exports.
const BOM = "\ufeff"

// WriteTable writes rows as a CSV file in a temporary directory and returns
// its path. The first row is the column header.
func WriteTable(t *testing.T, name string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create table %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("Failed to write table %s: %v", path, err)
	}
	return path
}

// WriteFile writes raw content into a temporary directory and returns its path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// WriteConfig writes a dataset config as TOML next to tablePath and returns
// the config path. hierarchy is a list of {column: level} pairs.
func WriteConfig(t *testing.T, tablePath string, hierarchy []map[string]string, extra map[string]interface{}) string {
	t.Helper()

	cfg := map[string]interface{}{
		"data_folder_path":        filepath.Dir(tablePath),
		"data_objects_hierarchy":  hierarchy,
		"data_objects_file_paths": "",
		"data_objects_table_path": filepath.Base(tablePath),
		"num_header_rows":         1,
		"other_columns":           []string{},
	}
	for k, v := range extra {
		cfg[k] = v
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	path := filepath.Join(filepath.Dir(tablePath), "dataset.toml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write config %s: %v", path, err)
	}
	return path
}

// SubjectTrialRows is the canonical two-level fixture table.
func SubjectTrialRows() [][]string {
	return [][]string{
		{"Subject", "Trial"},
		{"Nairobi", "Nairobi_006"},
		{"Nairobi", "Nairobi_007"},
		{"Mombasa", "Mombasa_001"},
	}
}

// SubjectTrialHierarchy maps the fixture columns onto same-named levels.
func SubjectTrialHierarchy() []map[string]string {
	return []map[string]string{
		{"Subject": "Subject"},
		{"Trial": "Trial"},
	}
}
