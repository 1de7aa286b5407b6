// Package convert transforms an internal/arena.Arena parse tree into an
// immutable, visitor-friendly tagged-variant tree: plain Go values with no
// further dependency on the arena once conversion completes.
package convert

import "github.com/oxhq/styler/internal/arena"

// Trivia is a comment or whitespace run attached to a Node as leading or
// trailing context.
type Trivia struct {
	Kind  string
	Start int
	End   int
	Text  string
}

// Node is the immutable converted tree's single representation: one
// struct shaped like a tagged union over arena.NodeKind, carrying only the
// fields relevant to its own Kind. Parent is a weak, non-owning back-reference set once
// during construction and never mutated afterward.
type Node struct {
	Kind     arena.NodeKind
	Start    int
	End      int
	Children []*Node
	Parent   *Node

	LeadingTrivia  []Trivia
	TrailingTrivia []Trivia

	// Name covers identifiers, type names, field/method names, module
	// names, package names, labels, and annotation names — whichever is
	// relevant to Kind.
	Name string
	// Lexeme is the raw source text of a literal expression.
	Lexeme string
	// LiteralKind discriminates a KindLiteralExpression's raw Lexeme
	// (int/long/float/double/string/char/boolean/null/text-block), set
	// by literalStrategy, which inspects the lexeme text via
	// discriminateLiteral.
	LiteralKind LiteralKind
	// Decoded is the escape-decoded, indentation-stripped text of a text
	// block, populated only when LiteralKind == LiteralTextBlock.
	Decoded string

	Modifiers   []string
	IsSealed    bool
	IsNonSealed bool
	IsOpen      bool
	IsVarargs   bool
	IsFinal     bool
	IsReceiver  bool
	IsUnnamed   bool
	IsTransitive bool
	IsStaticPhase bool
	ExtraDims   int

	Targets         []string // exports/opens `to` clause
	Implementations []string // provides `with` clause

	// Permits lists a sealed type's permitted direct subtypes: the
	// explicit `permits` clause's names when written, otherwise every
	// sibling top-level type declaration inferred to extend or implement
	// it directly.
	Permits []string
}

// LiteralKind names the concrete literal subtype a KindLiteralExpression
// or KindStringTemplateExpression node carries.
type LiteralKind int

const (
	LiteralNone LiteralKind = iota
	LiteralInt
	LiteralLong
	LiteralFloat
	LiteralDouble
	LiteralString
	LiteralTextBlock
	LiteralStringTemplate
	LiteralChar
	LiteralBoolean
	LiteralNull
)

// Walk calls fn for n and every descendant, pre-order.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first descendant (including n itself) for which pred
// returns true, pre-order, or nil.
func (n *Node) Find(pred func(*Node) bool) *Node {
	if n == nil {
		return nil
	}
	if pred(n) {
		return n
	}
	for _, c := range n.Children {
		if f := c.Find(pred); f != nil {
			return f
		}
	}
	return nil
}
