// Package registry provides a global registry for toy factories.
// Toys register themselves in init() functions, allowing the platform
// to discover and instantiate toys without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-fidget/internal/core"
	"github.com/vovakirdan/tui-fidget/internal/physics"
	"github.com/vovakirdan/tui-fidget/internal/shading"
)

// Toy is the interface every sensory toy implements.
// Toys contain pure logic with no external dependencies (especially no Bubble Tea,
// no audio). The platform handles input mapping, timing, feedback and rendering.
type Toy interface {
	// ID returns a unique identifier for this toy (e.g., "spinner").
	// Used for CLI commands and interaction statistics.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset is called when the toy appears: it sizes the toy to its cell and
	// starts any simulator it owns.
	Reset(cfg core.RuntimeConfig)

	// Hide is called when the toy disappears from view. Simulators stop and
	// no further ticks arrive until the next Reset.
	Hide()

	// Step advances the toy by one host tick. Feedback events in the result
	// are dispatched by the platform.
	Step(f core.Frame) core.StepResult

	// Render draws the toy into a cell-sized screen. The screen is pre-cleared.
	Render(dst *core.Screen, view core.View)

	// State returns the toy's current externally visible state.
	State() core.ToyState
}

// Env carries the tuned constants injected into every toy.
type Env struct {
	Ball      physics.BallConfig
	Spinner   physics.SpinnerConfig
	Pendulum  physics.PendulumConfig
	Shading   shading.Model
	MaxShadow float64 // Shadow offset at rest, in cells
}

// DefaultEnv returns the built-in tuning.
func DefaultEnv() Env {
	return Env{
		Ball:      physics.DefaultBallConfig(),
		Spinner:   physics.DefaultSpinnerConfig(),
		Pendulum:  physics.DefaultPendulumConfig(),
		Shading:   shading.DefaultModel(),
		MaxShadow: 1,
	}
}

// ToyInfo contains metadata about a registered toy.
type ToyInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a toy.
type Factory func(env Env) Toy

// ErrUnknownToy is returned by Create for an unregistered id.
var ErrUnknownToy = errors.New("registry: unknown toy")

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a toy factory to the registry.
// Typically called from a toy's init() function.
// Panics if a toy with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: toy %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f(DefaultEnv()).Title()
}

// List returns information about all registered toys, sorted by ID.
func List() []ToyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ToyInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ToyInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new toy by its ID.
// Returns ErrUnknownToy if the ID is not registered.
func Create(id string, env Env) (Toy, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownToy, id)
	}

	return f(env), nil
}

// Exists checks if a toy with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
