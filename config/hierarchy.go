package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/researchos/dataset-builder/errors"
)

// readDocument parses a config file into a generic document without
// touching key case. Viper folds keys to lower case, but hierarchy keys are
// column headers and pass-through keys are kept as written.
func readDocument(path, format string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfigInvalid, "failed to read config file %s: %v", path, err)
	}

	doc := make(map[string]interface{})
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		err = toml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfigInvalid, "failed to parse config file %s: %v", path, err)
	}
	return doc, nil
}

// extraKeys returns the entries of doc that are not configuration keys.
// Keys matching a known key in any case belong to Viper and are skipped.
func extraKeys(doc map[string]interface{}) map[string]interface{} {
	var extra map[string]interface{}
	for k, v := range doc {
		if knownKeys[strings.ToLower(k)] {
			continue
		}
		if extra == nil {
			extra = make(map[string]interface{})
		}
		extra[k] = v
	}
	return extra
}

// decodeHierarchy converts a raw sequence of single-entry mappings into
// column→level maps. Values must be strings.
func decodeHierarchy(raw interface{}) ([]map[string]string, error) {
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrConfigInvalid, "missing required keys: %s", KeyDataObjectsHierarchy)
	}

	var out []map[string]string
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: false,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create hierarchy decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrConfigInvalid, "%s is mistyped: %v", KeyDataObjectsHierarchy, err),
			`expected a list like [{ subject_col = "Subject" }, { trial_col = "Trial" }]`,
		)
	}
	return out, nil
}
