// Package registry provides a global registry for game mode factories.
// Modes register themselves in init() functions, so the platform can list
// and start them without importing each one by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/ultrasnake/internal/core"
)

// Game is the contract between a game mode and the platform.
// Implementations hold pure simulation state and never touch the terminal;
// the platform owns input mapping, timing and presentation.
type Game interface {
	// ID identifies the mode on the command line.
	ID() string

	// Title is the human-readable name shown in menus.
	Title() string

	// Reset starts a fresh run with the given runtime settings.
	Reset(cfg core.RuntimeConfig)

	// Step advances the run by one platform tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the run into dst.
	Render(dst *core.Screen)

	// State reports score, high score and run status.
	State() core.GameState
}

// Resizer is implemented by games that can re-layout without restarting.
type Resizer interface {
	Resize(w, h int)
}

// Disposer is implemented by games holding state that must be torn down.
type Disposer interface {
	Dispose()
}

// ScoreKeeper is implemented by games whose modes share a high score.
type ScoreKeeper interface {
	ScoreKey() string
}

// Warner is implemented by games that fall back to defaults on bad settings.
type Warner interface {
	Warnings() error
}

// ScoreKey returns the storage key for g's high score.
func ScoreKey(g Game) string {
	if k, ok := g.(ScoreKeeper); ok {
		return k.ScoreKey()
	}
	return g.ID()
}

// GameInfo contains metadata about a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a mode.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory under id.
// Panics if id is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns every registered mode, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates the mode registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
