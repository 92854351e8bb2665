// Package registry maps level builder IDs to builders.
// Built-in builders register themselves in init() functions, and levels
// loaded from disk register at startup, so the session can look up any
// level by ID without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// ErrUnknownBuilder is returned when no builder has the requested ID.
var ErrUnknownBuilder = errors.New("registry: unknown builder")

// Builder produces a complete World for a level index.
// Builders are stateless: every call starts from an empty world, and all
// randomness comes from rng so the same seed yields the same level.
type Builder interface {
	// ID returns a unique identifier (e.g., "1-1", "random").
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Build creates the world for the given 1-based level index.
	Build(cfg *config.PlatformerConfig, index int, rng *rand.Rand) (*sim.World, error)
}

// BuilderInfo contains metadata about a registered builder.
type BuilderInfo struct {
	ID    string
	Title string
}

// Registry is a thread-safe set of builders keyed by ID.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Default is the process-wide registry used by built-in builders.
var Default = New()

// Register adds a builder.
// Panics if a builder with the same ID is already registered.
func (r *Registry) Register(b Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.builders[b.ID()]; exists {
		panic(fmt.Sprintf("registry: builder %q already registered", b.ID()))
	}
	r.builders[b.ID()] = b
}

// Lookup returns the builder with the given ID.
func (r *Registry) Lookup(id string) (Builder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.builders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuilder, id)
	}
	return b, nil
}

// Exists checks if a builder with the given ID is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.builders[id]
	return ok
}

// List returns information about all registered builders, sorted by ID.
func (r *Registry) List() []BuilderInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]BuilderInfo, 0, len(r.builders))
	for id, b := range r.builders {
		result = append(result, BuilderInfo{ID: id, Title: b.Title()})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Register adds a builder to the default registry.
func Register(b Builder) { Default.Register(b) }

// Lookup finds a builder in the default registry.
func Lookup(id string) (Builder, error) { return Default.Lookup(id) }

// Exists checks the default registry.
func Exists(id string) bool { return Default.Exists(id) }

// List lists the default registry.
func List() []BuilderInfo { return Default.List() }
