// Package registry provides a global registry for move-selection strategies.
// Strategies register themselves in init() functions, allowing the platform
// to discover and instantiate them by tag without hardcoded dependencies.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tilebot/internal/config"
	"github.com/vovakirdan/tilebot/internal/games/t2048"
)

// Tag identifies a strategy in CLI flags, configuration and run history.
type Tag string

const (
	TagGreedy     Tag = "greedy"
	TagHeuristic  Tag = "heuristic"
	TagExpectimax Tag = "expectimax"
	TagAlphaBeta  Tag = "alphabeta"
)

// ErrUnknownStrategy is returned for tags with no registered factory.
var ErrUnknownStrategy = errors.New("registry: unknown strategy")

// DefaultDirection is returned by strategies when no direction changes the grid.
const DefaultDirection = t2048.DirUp

// cycle is the order toggleStrategy walks through.
var cycle = map[Tag]Tag{
	TagGreedy:     TagHeuristic,
	TagHeuristic:  TagExpectimax,
	TagExpectimax: TagAlphaBeta,
	TagAlphaBeta:  TagGreedy,
}

// Strategy selects moves for a grid.
//
// SelectMove must treat g as read-only and do all lookahead on detached copies.
// It returns a legal direction whenever one exists, and DefaultDirection otherwise.
// Cancelling ctx stops the search between top-level directions; the best
// direction found so far is returned.
type Strategy interface {
	Tag() Tag
	SelectMove(ctx context.Context, g *t2048.Grid) t2048.Direction
}

// Info contains metadata about a registered strategy.
type Info struct {
	Tag   Tag
	Title string
}

// Factory builds a strategy from the strategy configuration.
type Factory func(cfg config.StrategiesConfig) Strategy

var (
	factories = make(map[Tag]Factory)
	titles    = make(map[Tag]string)
	mu        sync.RWMutex
)

// Register adds a strategy factory to the registry.
// Panics if a strategy with the same tag is already registered.
func Register(tag Tag, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[tag]; exists {
		panic(fmt.Sprintf("registry: strategy %q already registered", tag))
	}

	factories[tag] = f
	titles[tag] = title
}

// List returns information about all registered strategies, sorted by tag.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for tag := range factories {
		result = append(result, Info{Tag: tag, Title: titles[tag]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Tag < result[j].Tag
	})

	return result
}

// Create instantiates a new strategy by its tag.
func Create(tag Tag, cfg config.StrategiesConfig) (Strategy, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[tag]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, tag)
	}

	return f(cfg), nil
}

// Exists checks if a strategy with the given tag is registered.
func Exists(tag Tag) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[tag]
	return ok
}

// Title returns the display name of a strategy, or the tag itself if unknown.
func Title(tag Tag) string {
	mu.RLock()
	defer mu.RUnlock()

	if title, ok := titles[tag]; ok {
		return title
	}
	return string(tag)
}

// Next returns the tag that follows tag in the toggle cycle.
// Unknown tags restart the cycle.
func Next(tag Tag) Tag {
	if next, ok := cycle[tag]; ok {
		return next
	}
	return TagGreedy
}

// Parse converts a name to a registered tag.
func Parse(name string) (Tag, error) {
	tag := Tag(name)
	if !Exists(tag) {
		return "", fmt.Errorf("%w %q", ErrUnknownStrategy, name)
	}
	return tag, nil
}
