package level

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/level/formats"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

//go:embed layouts/*.yaml scripts/*.lua
var builtinFS embed.FS

func init() {
	if err := RegisterBuiltins(registry.Default); err != nil {
		panic(err)
	}
	registry.Register(NewRandomBuilder("random", "Random World"))
}

// RegisterBuiltins registers the embedded layouts and scripts.
func RegisterBuiltins(reg *registry.Registry) error {
	layouts, err := builtinFS.ReadDir("layouts")
	if err != nil {
		return fmt.Errorf("level: read embedded layouts: %w", err)
	}
	for _, e := range layouts {
		data, err := builtinFS.ReadFile(path.Join("layouts", e.Name()))
		if err != nil {
			return fmt.Errorf("level: read %s: %w", e.Name(), err)
		}
		l, err := formats.Decode(e.Name(), data)
		if err != nil {
			return err
		}
		b, err := NewFixedBuilder(l)
		if err != nil {
			return err
		}
		reg.Register(b)
	}

	scripts, err := builtinFS.ReadDir("scripts")
	if err != nil {
		return fmt.Errorf("level: read embedded scripts: %w", err)
	}
	for _, e := range scripts {
		data, err := builtinFS.ReadFile(path.Join("scripts", e.Name()))
		if err != nil {
			return fmt.Errorf("level: read %s: %w", e.Name(), err)
		}
		b, err := NewScriptBuilder(strings.TrimSuffix(e.Name(), ".lua"), string(data))
		if err != nil {
			return err
		}
		reg.Register(b)
	}
	return nil
}
