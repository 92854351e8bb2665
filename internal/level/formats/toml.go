package formats

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// DecodeTOML decodes a TOML layout. Unknown keys are rejected.
func DecodeTOML(data []byte) (*Layout, error) {
	var l Layout
	md, err := toml.Decode(string(data), &l)
	if err != nil {
		return nil, fmt.Errorf("formats: toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("formats: toml: unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := l.Check(); err != nil {
		return nil, err
	}
	return &l, nil
}
