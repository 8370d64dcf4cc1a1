package dataset

import (
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/researchos/dataset-builder/errors"
)

// Key is a partial lookup key: level name → instance name. It may name any
// subset of the configured levels.
type Key map[string]string

// ParseKey parses Level=Name terms. Each argument may hold several
// shell-quoted terms, so both of these are equivalent:
//
//	ParseKey("Subject=Nairobi", "Trial=Nairobi_006")
//	ParseKey(`Subject=Nairobi Trial="Nairobi_006"`)
func ParseKey(terms ...string) (Key, error) {
	key := make(Key)
	for _, arg := range terms {
		words, err := shellquote.Split(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse key %q", arg)
		}
		for _, word := range words {
			levelName, name, ok := strings.Cut(word, "=")
			if !ok || levelName == "" {
				return nil, errors.WithHint(
					errors.Newf("malformed key term %q", word),
					`write each term as Level=Name, e.g. Subject=Nairobi`,
				)
			}
			if _, dup := key[levelName]; dup {
				return nil, errors.Newf("level %q given more than once", levelName)
			}
			key[levelName] = name
		}
	}
	return key, nil
}

// Levels returns the level names in the key, sorted alphabetically.
func (k Key) Levels() []string {
	names := make([]string, 0, len(k))
	for name := range k {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the key as shell-quoted Level=Name terms.
func (k Key) String() string {
	words := make([]string, 0, len(k))
	for _, levelName := range k.Levels() {
		words = append(words, levelName+"="+k[levelName])
	}
	return shellquote.Join(words...)
}
