package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/researchos/dataset-builder/errors"
	"github.com/researchos/dataset-builder/level"
)

// DefaultFilePermissions for written config files (rw-r--r--)
const DefaultFilePermissions = 0644

// Marshal renders a config in the given format (toml, json or yaml).
func Marshal(c *Config, format string) ([]byte, error) {
	m := c.AsMap()
	switch format {
	case FormatTOML:
		return toml.Marshal(m)
	case FormatJSON:
		return json.MarshalIndent(m, "", "  ")
	case FormatYAML:
		return yaml.Marshal(m)
	default:
		return nil, errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
}

// Template returns a starter config for the given bindings.
func Template(bindings []level.Binding, tablePath string) *Config {
	hierarchy := make([]map[string]string, len(bindings))
	for i, b := range bindings {
		hierarchy[i] = map[string]string{b.Column: b.Level}
	}
	return &Config{
		DataFolderPath:       "data",
		DataObjectsHierarchy: hierarchy,
		DataObjectsFilePaths: "",
		DataObjectsTablePath: tablePath,
		NumHeaderRows:        1,
		OtherColumns:         []string{},
		Delimiter:            ",",
		LazyQuotes:           true,
	}
}

// WriteFile writes c to path in the format implied by its extension.
// An existing file is only replaced when overwrite is set, after rotating
// it into .back1/.back2/.back3.
func WriteFile(c *Config, path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil {
		if !overwrite {
			return errors.WithHint(errors.Newf("%s already exists", path), "use --force to replace it")
		}
		if err := createBackup(path); err != nil {
			return errors.Wrap(err, "failed to create backup")
		}
	}

	data, err := Marshal(c, FormatOf(path))
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// createBackup creates rotating backups (.back1, .back2, .back3) before
// replacing a config
func createBackup(configPath string) error {
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete old backup %s", back3)
	}

	for _, step := range []struct{ from, to string }{{back2, back3}, {back1, back2}} {
		if _, err := os.Stat(step.from); err == nil {
			if err := os.Rename(step.from, step.to); err != nil {
				return errors.Wrap(err, fmt.Sprintf("failed to rotate %s", step.from))
			}
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}
