package display

import (
	"encoding/json"
	"os"
)

// CompactEnv switches JSON output to a single line when set to "1".
const CompactEnv = "DATASET_JSON_COMPACT"

// MarshalJSON pretty-prints JSON for humans, or compacts it when CompactEnv
// is set so output can be piped line by line.
func MarshalJSON(v interface{}) ([]byte, error) {
	if os.Getenv(CompactEnv) == "1" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
