package convert

import (
	"strings"

	"github.com/oxhq/styler/internal/arena"
)

// ImportRecord is one entry of ExtractImports's ordered result.
type ImportRecord struct {
	QualifiedName string
	IsStatic      bool
	IsWildcard    bool
	Line          int
}

// ExtractImports walks the converted compilation unit's import list and
// returns regular imports in source order, followed by static imports in
// source order — a stable partition by static-ness, not a re-sort.
// lineOf converts a byte offset to a 1-based line number; callers
// typically pass a closure over the same source positionAt logic used
// for diagnostics.
func ExtractImports(root *Node, lineOf func(offset int) int) []ImportRecord {
	var regulars, statics []ImportRecord
	root.Walk(func(n *Node) {
		if n.Kind != arena.KindImportDeclaration {
			return
		}
		isStatic, isWildcard := decodeImportModifier(n)
		rec := ImportRecord{
			QualifiedName: n.Name,
			IsStatic:      isStatic,
			IsWildcard:    isWildcard,
			Line:          lineOf(n.Start),
		}
		if isStatic {
			statics = append(statics, rec)
		} else {
			regulars = append(regulars, rec)
		}
	})
	out := make([]ImportRecord, 0, len(regulars)+len(statics))
	out = append(out, regulars...)
	out = append(out, statics...)
	return out
}

func decodeImportModifier(n *Node) (isStatic, isWildcard bool) {
	if len(n.Modifiers) == 0 {
		return false, strings.HasSuffix(n.Name, ".*")
	}
	switch n.Modifiers[0] {
	case "static wildcard":
		return true, true
	case "static":
		return true, false
	case "wildcard":
		return false, true
	default:
		return false, false
	}
}
