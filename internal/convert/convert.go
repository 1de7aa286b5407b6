package convert

import (
	"sort"
	"strings"

	"github.com/oxhq/styler/internal/arena"
	"github.com/oxhq/styler/internal/diag"
	"github.com/oxhq/styler/internal/parser"
)

// Converter holds the state shared across one tree conversion: the source
// arena, the flattened trivia stream (for leading/trailing attachment),
// and the registry of per-kind strategies.
type Converter struct {
	tree     *arena.Arena
	src      string
	version  int
	registry *Registry

	trivia []Trivia // flattened, sorted by Start
	cursor int
}

// Convert walks the arena tree rooted at root and produces its immutable
// Node equivalent, attaching trivia along the way. version is the
// language version the tree was parsed under, needed to re-parse
// embedded string-template interpolations under the same grammar.
func Convert(src string, version int, tree *arena.Arena, root int, leading [][]parser.Trivia) (*Node, error) {
	return ConvertWithRegistry(src, version, tree, root, leading, Default)
}

// ConvertWithRegistry is Convert with an explicit Strategy registry,
// primarily for tests exercising a single strategy in isolation.
func ConvertWithRegistry(src string, version int, tree *arena.Arena, root int, leading [][]parser.Trivia, reg *Registry) (*Node, error) {
	conv := &Converter{tree: tree, src: src, version: version, registry: reg, trivia: flattenTrivia(leading)}
	node, err := conv.convertNode(root)
	if err != nil {
		return nil, err
	}
	inferPermits(node)
	return node, nil
}

func flattenTrivia(leading [][]parser.Trivia) []Trivia {
	var all []Trivia
	for _, group := range leading {
		for _, t := range group {
			all = append(all, Trivia{Kind: t.Kind.String(), Start: t.Start, End: t.End, Text: t.Text})
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Start < all[j].Start })
	return all
}

func (conv *Converter) convertNode(idx int) (*Node, error) {
	if idx == arena.NullIndex {
		return nil, nil
	}
	kind, err := conv.tree.KindOf(idx)
	if err != nil {
		return nil, err
	}
	start, end, err := conv.tree.RangeOf(idx)
	if err != nil {
		return nil, err
	}
	childIdxs, err := conv.tree.ChildrenOf(idx)
	if err != nil {
		return nil, err
	}

	children := make([]*Node, 0, len(childIdxs))
	for _, ci := range childIdxs {
		child, cerr := conv.convertNode(ci)
		if cerr != nil {
			return nil, cerr
		}
		if child != nil {
			children = append(children, child)
		}
	}

	if len(children) == 0 {
		conv.attachLeading(start)
	}

	strategy, ok := conv.registry.lookup(kind)
	if !ok {
		strategy = passthroughStrategy
	}
	node, serr := strategy(conv, idx, children)
	if serr != nil {
		return nil, serr
	}
	if node == nil {
		node = &Node{Kind: kind, Start: start, End: end, Children: children}
	}
	for _, c := range node.Children {
		c.Parent = node
	}

	if len(children) == 0 {
		conv.attachTrailing(node)
	}

	return node, nil
}

// attachLeading does nothing: leading trivia is consumed by
// conv.takeLeading once the target Node exists.
func (conv *Converter) attachLeading(before int) {
	// no-op placeholder retained for symmetry; actual consumption happens
	// in takeLeading, called by passthroughStrategy and literal/identifier
	// strategies once the target Node exists.
	_ = before
}

// takeLeading drains all trivia ending at or before `before` from the
// cursor, returning them as this leaf's leading trivia.
func (conv *Converter) takeLeading(before int) []Trivia {
	var out []Trivia
	for conv.cursor < len(conv.trivia) && conv.trivia[conv.cursor].End <= before {
		out = append(out, conv.trivia[conv.cursor])
		conv.cursor++
	}
	return out
}

// attachTrailing greedily takes a single same-line trivia item (typically
// a line comment) immediately following the leaf, with no intervening
// newline, as the leaf's trailing trivia.
func (conv *Converter) attachTrailing(node *Node) {
	if conv.cursor >= len(conv.trivia) {
		return
	}
	next := conv.trivia[conv.cursor]
	if next.Start < node.End {
		return
	}
	between := safeSlice(conv.src, node.End, next.Start)
	if strings.ContainsAny(between, "\n") {
		return
	}
	node.TrailingTrivia = append(node.TrailingTrivia, next)
	conv.cursor++
}

func safeSlice(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s) {
		end = len(s)
	}
	if start >= end {
		return ""
	}
	return s[start:end]
}

// passthroughStrategy is used for any arena.NodeKind with no registered
// strategy: it builds a bare Node carrying only structural fields. Reached
// only for kinds intentionally left generic (e.g. trivia-adjacent or
// rarely-formatted nodes); every kind with a converted, caller-visible
// attribute has a dedicated strategy in builtins.go.
func passthroughStrategy(conv *Converter, idx int, children []*Node) (*Node, error) {
	kind, err := conv.tree.KindOf(idx)
	if err != nil {
		return nil, err
	}
	start, end, err := conv.tree.RangeOf(idx)
	if err != nil {
		return nil, err
	}
	node := &Node{Kind: kind, Start: start, End: end, Children: children}
	if len(children) == 0 {
		node.LeadingTrivia = conv.takeLeading(start)
	}
	return node, nil
}

// invalidStructure builds the InvalidNodeStructureFault raised when a
// strategy finds a required child missing or malformed.
func invalidStructure(conv *Converter, idx int, kindName, reason string) error {
	start, end, _ := conv.tree.RangeOf(idx)
	return diag.InvalidNodeStructureFault{NodeIndex: idx, Kind: kindName, Start: start, End: end, Reason: reason}
}
