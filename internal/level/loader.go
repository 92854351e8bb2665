package level

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/level/formats"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// LoadDir registers every layout (.yaml, .yml, .toml) and script (.lua)
// found directly in dir. Files that fail to decode or build, and ids that
// are already registered, are logged and skipped. A missing directory is
// not an error. It returns the number of builders registered.
func LoadDir(dir string, reg *registry.Registry, logger *log.Logger) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("level: read %s: %w", dir, err)
	}

	trial := config.Default()
	loaded := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		p := filepath.Join(dir, name)

		b, err := loadFile(p, name)
		if err != nil {
			logger.Warn("skipping level file", "file", p, "error", err)
			continue
		}
		if b == nil {
			continue
		}
		if reg.Exists(b.ID()) {
			logger.Warn("skipping duplicate level", "file", p, "id", b.ID())
			continue
		}
		// Trial build so a broken level never reaches the schedule.
		if _, err := b.Build(&trial, 1, rand.New(rand.NewSource(1))); err != nil {
			logger.Warn("skipping unbuildable level", "file", p, "error", err)
			continue
		}

		reg.Register(b)
		logger.Debug("level loaded", "id", b.ID(), "file", p)
		loaded++
	}
	return loaded, nil
}

// loadFile returns nil, nil for files that are not levels.
func loadFile(path, name string) (Builder, error) {
	isScript := strings.EqualFold(filepath.Ext(name), ".lua")
	if !isScript && !formats.IsLayoutFile(name) {
		return nil, nil
	}

	//nolint:gosec // Path comes from the user's level directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if isScript {
		return NewScriptBuilder(strings.TrimSuffix(name, filepath.Ext(name)), string(data))
	}
	l, err := formats.Decode(name, data)
	if err != nil {
		return nil, err
	}
	return NewFixedBuilder(l)
}
