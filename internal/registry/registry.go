// Package registry provides a global registry for effect factories.
// Effects register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/LaMitaOne/glint/internal/engine"
)

// Effect is what the platform can run: the engine's extension interface
// plus the metadata used by the CLI, the menu and the run store. Effects
// contain pure drawing logic with no external dependencies (especially
// no Bubble Tea); the platform handles hosting, timing and presentation.
type Effect interface {
	engine.Effect

	// ID returns a unique identifier for this effect (e.g. "bounce").
	// Used for CLI commands and run storage.
	ID() string

	// Title returns a human-readable name for display (e.g. "Bounce").
	Title() string
}

// Info contains metadata about a registered effect.
type Info struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of an effect.
type Factory func() Effect

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds an effect factory to the registry.
// Typically called from an effect's init() function.
// Panics if an effect with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: effect %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	e := f()
	titles[id] = e.Title()
}

// List returns information about all registered effects, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new effect by its ID.
// Returns an error if the effect ID is not registered.
func Create(id string) (Effect, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown effect %q", id)
	}

	return f(), nil
}

// Exists checks if an effect with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
