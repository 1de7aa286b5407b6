package convert

import (
	"fmt"
	"sync"

	"github.com/oxhq/styler/internal/arena"
)

// Strategy converts one arena node (already with its children converted)
// into a Node. Implementations read attributes off the arena via idx;
// children are supplied pre-converted so a Strategy never recurses itself.
type Strategy func(conv *Converter, idx int, children []*Node) (*Node, error)

// Registry maps each arena.NodeKind to exactly one conversion Strategy.
// Registration of a second strategy for an already-registered kind is
// rejected outright rather than silently overwritten.
type Registry struct {
	mu         sync.RWMutex
	strategies map[arena.NodeKind]Strategy
}

// NewRegistry builds an empty conversion registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[arena.NodeKind]Strategy)}
}

// Register installs s as the sole strategy for kind.
func (r *Registry) Register(kind arena.NodeKind, s Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.strategies[kind]; exists {
		return fmt.Errorf("convert: a strategy is already registered for node kind %v", kind)
	}
	r.strategies[kind] = s
	return nil
}

func (r *Registry) lookup(kind arena.NodeKind) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[kind]
	return s, ok
}

// Default is the process-wide registry of built-in conversion strategies,
// built once via registerBuiltins.
var Default = buildDefaultRegistry()

func buildDefaultRegistry() *Registry {
	r := NewRegistry()
	if err := registerBuiltins(r); err != nil {
		panic(err) // programmer error: duplicate builtin registration
	}
	return r
}
