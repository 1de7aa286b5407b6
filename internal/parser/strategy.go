package parser

// Strategy priority constants: phase-awareness outranks
// mere keyword recognition when more than one strategy claims a token.
const (
	PriorityKeywordBased = 10
	PriorityPhaseAware    = 15
)

// Strategy is a version- and phase-gated grammar extension. CanHandle is
// consulted before ParseConstruct is ever called; strategies answering
// false are skipped entirely.
type Strategy interface {
	// Name identifies the strategy for diagnostics and registry conflict
	// messages.
	Name() string
	// Priority breaks ties when multiple strategies claim the same token.
	Priority() int
	// CanHandle reports whether this strategy applies at the current
	// version/phase/context. It must not consume any input.
	CanHandle(version int, phase Phase, ctx *Context) bool
	// ParseConstruct performs the parse; only called after CanHandle
	// returned true.
	ParseConstruct(ctx *Context) (int, error)
}

// StrategyRegistry is a process-wide, read-only-after-construction table
// of version-gated strategies.
type StrategyRegistry struct {
	strategies []Strategy
}

// NewStrategyRegistry builds a registry from the given strategies.
// Construction never fails on duplicate names — strategies are tried in
// priority order, highest first, and every strategy remains eligible
// independently; "conflict" only matters for the arena-node conversion
// registry (internal/convert), not here.
func NewStrategyRegistry(strategies ...Strategy) *StrategyRegistry {
	r := &StrategyRegistry{strategies: append([]Strategy(nil), strategies...)}
	r.sortByPriorityDescending()
	return r
}

func (r *StrategyRegistry) sortByPriorityDescending() {
	for i := 1; i < len(r.strategies); i++ {
		for j := i; j > 0 && r.strategies[j-1].Priority() < r.strategies[j].Priority(); j-- {
			r.strategies[j-1], r.strategies[j] = r.strategies[j], r.strategies[j-1]
		}
	}
}

// Resolve returns the highest-priority strategy that claims the current
// position, or nil if none apply.
func (r *StrategyRegistry) Resolve(version int, phase Phase, ctx *Context) Strategy {
	for _, s := range r.strategies {
		if s.CanHandle(version, phase, ctx) {
			return s
		}
	}
	return nil
}

// DefaultStrategyRegistry is the process-wide registry of built-in
// version-gated constructs.
func DefaultStrategyRegistry() *StrategyRegistry {
	return NewStrategyRegistry(
		flexibleConstructorBodyStrategy{},
		recordDeclarationStrategy{},
		sealedHierarchyStrategy{},
		patternMatchingInstanceofStrategy{},
		unnamedVariableStrategy{},
	)
}
