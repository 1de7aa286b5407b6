package convert

import "github.com/oxhq/styler/internal/arena"

// inferPermits fills in Permits for every sealed top-level type
// declaration in root that has no explicit `permits` clause, inferring
// the list from sibling top-level type declarations in the same
// compilation unit that extend or implement it directly. A type with an
// explicit clause is left untouched: explicit permits lists need not
// name every direct subtype inference would find (they can also narrow
// the set by omitting one the clause doesn't mention, though the
// grammar accepts that without complaint).
func inferPermits(root *Node) {
	if root == nil || root.Kind != arena.KindCompilationUnit {
		return
	}
	var topTypes []*Node
	for _, c := range root.Children {
		if isTypeDeclKind(c.Kind) {
			topTypes = append(topTypes, c)
		}
	}
	for _, t := range topTypes {
		if !t.IsSealed || hasExplicitPermits(t) {
			continue
		}
		var permitted []string
		for _, sibling := range topTypes {
			if sibling == t {
				continue
			}
			if siblingExtendsOrImplements(sibling, t.Name) {
				permitted = append(permitted, sibling.Name)
			}
		}
		t.Permits = permitted
	}
}

func isTypeDeclKind(k arena.NodeKind) bool {
	switch k {
	case arena.KindClassDeclaration, arena.KindInterfaceDeclaration,
		arena.KindEnumDeclaration, arena.KindRecordDeclaration,
		arena.KindAnnotationTypeDeclaration:
		return true
	default:
		return false
	}
}

func hasExplicitPermits(t *Node) bool {
	for _, c := range t.Children {
		if c.Kind == arena.KindPermitsClause {
			return true
		}
	}
	return false
}

// siblingExtendsOrImplements reports whether sibling's direct
// extends/implements list (its only immediate type-category children)
// names the given simple type name.
func siblingExtendsOrImplements(sibling *Node, name string) bool {
	for _, c := range sibling.Children {
		if c.Kind.IsType() && simpleName(c.Name) == simpleName(name) {
			return true
		}
	}
	return false
}

func simpleName(qualified string) string {
	for i := len(qualified) - 1; i >= 0; i-- {
		if qualified[i] == '.' {
			return qualified[i+1:]
		}
	}
	return qualified
}
