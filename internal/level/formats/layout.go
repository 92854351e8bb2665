// Package formats decodes hand-authored level layouts from YAML and TOML.
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// ErrUnsupported is returned for file extensions with no decoder.
var ErrUnsupported = errors.New("formats: unsupported layout format")

// Layout is a hand-authored level in tile coordinates.
type Layout struct {
	ID      string  `yaml:"id" toml:"id"`
	Title   string  `yaml:"title" toml:"title"`
	Width   int     `yaml:"width" toml:"width"`
	Height  int     `yaml:"height" toml:"height"` // 0 means the configured row count
	Ground  Ground  `yaml:"ground" toml:"ground"`
	Blocks  []Block `yaml:"blocks" toml:"blocks"`
	Pipes   []Pipe  `yaml:"pipes" toml:"pipes"`
	Enemies []Cell  `yaml:"enemies" toml:"enemies"`
	Goal    *Cell   `yaml:"goal" toml:"goal"`
	End     int     `yaml:"end" toml:"end"` // 0 means Width
}

// Ground fills whole rows across the level except at gap columns.
type Ground struct {
	Rows []int `yaml:"rows" toml:"rows"`
	Gaps []int `yaml:"gaps" toml:"gaps"`
}

// Block is a single tile. Span repeats it to the right.
type Block struct {
	Col  int    `yaml:"col" toml:"col"`
	Row  int    `yaml:"row" toml:"row"`
	Type string `yaml:"type" toml:"type"`
	Span int    `yaml:"span" toml:"span"`
}

// Pipe is a stack of body tiles capped by a top tile.
// Base is the row of the lowest body tile; 0 means directly above the ground.
type Pipe struct {
	Col    int `yaml:"col" toml:"col"`
	Height int `yaml:"height" toml:"height"`
	Base   int `yaml:"base" toml:"base"`
}

// Cell is a tile coordinate.
type Cell struct {
	Col int `yaml:"col" toml:"col"`
	Row int `yaml:"row" toml:"row"`
}

// Check validates the parts of a layout that do not need a grid.
// Overlaps and bounds are checked when the level is built.
func (l *Layout) Check() error {
	if l.ID == "" {
		return errors.New("formats: layout has no id")
	}
	if l.Width <= 0 {
		return fmt.Errorf("formats: layout %q: width must be positive", l.ID)
	}
	if l.Width > sim.MaxCols {
		return fmt.Errorf("formats: layout %q: width %d exceeds %d", l.ID, l.Width, sim.MaxCols)
	}
	if l.Height < 0 {
		return fmt.Errorf("formats: layout %q: negative height", l.ID)
	}
	if l.Height > sim.MaxRows {
		return fmt.Errorf("formats: layout %q: height %d exceeds %d", l.ID, l.Height, sim.MaxRows)
	}
	if l.Goal == nil {
		return fmt.Errorf("formats: layout %q: no goal", l.ID)
	}
	for _, p := range l.Pipes {
		if p.Height <= 0 {
			return fmt.Errorf("formats: layout %q: pipe at column %d has no height", l.ID, p.Col)
		}
	}
	for _, b := range l.Blocks {
		if b.Span < 0 {
			return fmt.Errorf("formats: layout %q: negative span at (%d,%d)", l.ID, b.Col, b.Row)
		}
	}
	return nil
}

// Decode picks a decoder by file extension.
func Decode(name string, data []byte) (*Layout, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	case ".toml":
		return DecodeTOML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
}

// IsLayoutFile reports whether name has a layout extension.
func IsLayoutFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".toml":
		return true
	}
	return false
}
