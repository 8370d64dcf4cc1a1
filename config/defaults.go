package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/researchos/dataset-builder/errors"
)

// EnvPrefix is the environment variable prefix for overrides, e.g.
// DATASET_NUM_HEADER_ROWS=2.
const EnvPrefix = "DATASET"

// SetDefaults configures default values for optional settings.
// Required keys get no default so that their absence is detectable.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDelimiter, ",")
	v.SetDefault(KeyLazyQuotes, true)
}

// BindEnvVars binds the scalar settings to DATASET_* environment variables.
func BindEnvVars(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	for _, key := range []string{
		KeyDataFolderPath,
		KeyDataObjectsFilePaths,
		KeyDataObjectsTablePath,
		KeyNumHeaderRows,
		KeyDelimiter,
		KeyLazyQuotes,
	} {
		_ = v.BindEnv(key)
	}
}

// EnvVar returns the environment variable bound to key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

// applyEnvOverrides parses environment values for non-string keys. Viper
// returns bound variables as strings, which strict decoding would reject.
func applyEnvOverrides(v *viper.Viper) error {
	if raw, ok := os.LookupEnv(EnvVar(KeyNumHeaderRows)); ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return errors.Wrapf(errors.ErrConfigInvalid, "%s=%q is not an integer", EnvVar(KeyNumHeaderRows), raw)
		}
		v.Set(KeyNumHeaderRows, n)
	}
	if raw, ok := os.LookupEnv(EnvVar(KeyLazyQuotes)); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return errors.Wrapf(errors.ErrConfigInvalid, "%s=%q is not a boolean", EnvVar(KeyLazyQuotes), raw)
		}
		v.Set(KeyLazyQuotes, b)
	}
	return nil
}
