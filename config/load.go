package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/researchos/dataset-builder/errors"
)

// Supported config file formats
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// FormatOf returns the config format implied by a file extension.
// Unknown extensions are read as TOML.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// LoadFromFile loads a dataset config from a TOML, YAML or JSON file.
// Relative paths inside the file are resolved against the file's directory.
func LoadFromFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrConfigInvalid, "config file %s: %v", configPath, err),
			"pass the path of a dataset.toml file",
		)
	}

	format := FormatOf(configPath)
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType(format)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(errors.ErrConfigInvalid, "failed to read config file %s: %v", configPath, err)
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", configPath)
	}

	doc, err := readDocument(configPath, format)
	if err != nil {
		return nil, err
	}
	hierarchy, err := decodeHierarchy(doc[KeyDataObjectsHierarchy])
	if err != nil {
		return nil, err
	}
	cfg.DataObjectsHierarchy = hierarchy
	cfg.Extra = extraKeys(doc)
	cfg.Source = configPath
	cfg.resolvePaths(filepath.Dir(configPath))

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config file %s", configPath)
	}
	return cfg, nil
}

// FromMap builds a dataset config from an in-memory mapping. Paths are used
// as given.
func FromMap(m map[string]interface{}) (*Config, error) {
	v := newViper()
	if err := v.MergeConfigMap(m); err != nil {
		return nil, errors.Wrapf(errors.ErrConfigInvalid, "failed to merge config map: %v", err)
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}

	hierarchy, err := decodeHierarchy(m[KeyDataObjectsHierarchy])
	if err != nil {
		return nil, err
	}
	cfg.DataObjectsHierarchy = hierarchy
	cfg.Extra = extraKeys(m)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithViper unmarshals a config from a prepared Viper instance after
// checking that every required key is present. It does not validate values.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var missing []string
	for _, key := range RequiredKeys {
		if !v.IsSet(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, errors.WithHintf(
			errors.Wrapf(errors.ErrConfigInvalid, "missing required keys: %s", strings.Join(missing, ", ")),
			"required keys: %s", strings.Join(RequiredKeys, ", "),
		)
	}

	if err := applyEnvOverrides(v); err != nil {
		return nil, err
	}

	// No weak typing and no string-splitting hooks: a mistyped value is an
	// error, not a conversion.
	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = false
		dc.DecodeHook = nil
	}); err != nil {
		return nil, errors.Wrapf(errors.ErrConfigInvalid, "failed to unmarshal config: %v", err)
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	BindEnvVars(v)
	return v
}

func (c *Config) resolvePaths(baseDir string) {
	if c.DataObjectsTablePath != "" && !filepath.IsAbs(c.DataObjectsTablePath) {
		c.DataObjectsTablePath = filepath.Join(baseDir, c.DataObjectsTablePath)
	}
	if c.DataFolderPath != "" && !filepath.IsAbs(c.DataFolderPath) {
		c.DataFolderPath = filepath.Join(baseDir, c.DataFolderPath)
	}
}
