package convert

import "github.com/oxhq/styler/internal/arena"

// registerBuiltins installs one Strategy per arena.NodeKind whose
// attribute side table carries data the converted Node needs to expose.
// Kinds with no side-table attributes fall through to passthroughStrategy
// in Converter.convertNode and need no entry here.
func registerBuiltins(r *Registry) error {
	entries := []struct {
		kind arena.NodeKind
		fn   Strategy
	}{
		{arena.KindIdentifierExpression, identifierStrategy},
		{arena.KindFieldAccessExpression, identifierStrategy},
		{arena.KindMethodReferenceExpression, identifierStrategy},
		{arena.KindCallExpression, identifierStrategy},
		{arena.KindPackageDeclaration, identifierStrategy},
		{arena.KindImportDeclaration, importDeclarationStrategy},
		{arena.KindModuleImportDeclaration, moduleImportStrategy},
		{arena.KindLiteralExpression, literalStrategy},
		{arena.KindStringTemplateExpression, stringTemplateStrategy},
		{arena.KindModifier, modifierStrategy},
		{arena.KindClassType, identifierStrategy},
		{arena.KindExplicitConstructorInvocation, identifierStrategy},
		{arena.KindBreakStatement, identifierStrategy},
		{arena.KindContinueStatement, identifierStrategy},
		{arena.KindLabeledStatement, identifierStrategy},
		{arena.KindEnumConstant, identifierStrategy},
		{arena.KindRecordComponent, identifierStrategy},
		{arena.KindTypePattern, identifierStrategy},
		{arena.KindAnnotation, identifierStrategy},
		{arena.KindAnnotationArgument, identifierStrategy},

		{arena.KindClassDeclaration, typeDeclStrategy},
		{arena.KindInterfaceDeclaration, typeDeclStrategy},
		{arena.KindEnumDeclaration, typeDeclStrategy},
		{arena.KindRecordDeclaration, typeDeclStrategy},
		{arena.KindAnnotationTypeDeclaration, typeDeclStrategy},

		{arena.KindParameter, parameterStrategy},
		{arena.KindReceiverParameter, parameterStrategy},

		{arena.KindModuleDeclaration, moduleStrategy},
		{arena.KindRequiresDirective, requiresStrategy},
		{arena.KindExportsDirective, exportsOpensStrategy},
		{arena.KindOpensDirective, exportsOpensStrategy},
		{arena.KindProvidesDirective, providesStrategy},
		{arena.KindUsesDirective, usesStrategy},

		{arena.KindConstructorDeclaration, identifierStrategy},
		{arena.KindCompactConstructorDeclaration, identifierStrategy},
		{arena.KindMethodDeclaration, identifierStrategy},
	}
	for _, e := range entries {
		if err := r.Register(e.kind, e.fn); err != nil {
			return err
		}
	}
	return nil
}

func baseNode(conv *Converter, idx int, children []*Node) (*Node, int, int, error) {
	kind, err := conv.tree.KindOf(idx)
	if err != nil {
		return nil, 0, 0, err
	}
	start, end, err := conv.tree.RangeOf(idx)
	if err != nil {
		return nil, 0, 0, err
	}
	return &Node{Kind: kind, Start: start, End: end, Children: children}, start, end, nil
}

func identifierStrategy(conv *Converter, idx int, children []*Node) (*Node, error) {
	node, start, _, err := baseNode(conv, idx, children)
	if err != nil {
		return nil, err
	}
	if attrs, ok := conv.tree.IdentifierAttrsOf(idx); ok {
		node.Name = attrs.Name
	}
	if len(children) == 0 {
		node.LeadingTrivia = conv.takeLeading(start)
	}
	return node, nil
}

func importDeclarationStrategy(conv *Converter, idx int, children []*Node) (*Node, error) {
	node, start, _, err := baseNode(conv, idx, children)
	if err != nil {
		return nil, err
	}
	if attrs, ok := conv.tree.IdentifierAttrsOf(idx); ok {
		node.Name = attrs.Name
	}
	if mod, ok := conv.tree.ModifierAttrsOf(idx); ok {
		node.Modifiers = []string{mod.Text}
	}
	node.LeadingTrivia = conv.takeLeading(start)
	return node, nil
}

func moduleImportStrategy(conv *Converter, idx int, children []*Node) (*Node, error) {
	node, start, _, err := baseNode(conv, idx, children)
	if err != nil {
		return nil, err
	}
	if attrs, ok := conv.tree.ModuleImportAttrsOf(idx); ok {
		node.Name = attrs.ModuleName
	}
	node.LeadingTrivia = conv.takeLeading(start)
	return node, nil
}

func literalStrategy(conv *Converter, idx int, children []*Node) (*Node, error) {
	node, start, _, err := baseNode(conv, idx, children)
	if err != nil {
		return nil, err
	}
	if attrs, ok := conv.tree.LiteralAttrsOf(idx); ok {
		node.Lexeme = attrs.Lexeme
	}
	node.LiteralKind = discriminateLiteral(node.Lexeme)
	if node.LiteralKind == LiteralTextBlock {
		node.Decoded = decodeTextBlock(node.Lexeme)
	}
	node.LeadingTrivia = conv.takeLeading(start)
	return node, nil
}

func modifierStrategy(conv *Converter, idx int, children []*Node) (*Node, error) {
	node, start, _, err := baseNode(conv, idx, children)
	if err != nil {
		return nil, err
	}
	if attrs, ok := conv.tree.ModifierAttrsOf(idx); ok {
		node.Name = attrs.Text
	}
	node.LeadingTrivia = conv.takeLeading(start)
	return node, nil
}

func typeDeclStrategy(conv *Converter, idx int, children []*Node) (*Node, error) {
	node, start, _, err := baseNode(conv, idx, children)
	if err != nil {
		return nil, err
	}
	attrs, ok := conv.tree.TypeDeclAttrsOf(idx)
	if !ok {
		return nil, invalidStructure(conv, idx, node.Kind.String(), "type declaration missing required TypeDeclAttrs")
	}
	node.Name = attrs.Name
	node.IsSealed = attrs.IsSealed
	node.IsNonSealed = attrs.IsNonSealed
	if len(children) == 0 {
		node.LeadingTrivia = conv.takeLeading(start)
	}
	return node, nil
}

func parameterStrategy(conv *Converter, idx int, children []*Node) (*Node, error) {
	node, start, _, err := baseNode(conv, idx, children)
	if err != nil {
		return nil, err
	}
	if attrs, ok := conv.tree.ParameterAttrsOf(idx); ok {
		node.Name = attrs.Name
		node.IsVarargs = attrs.IsVarargs
		node.IsFinal = attrs.IsFinal
		node.IsReceiver = attrs.IsReceiver
		node.IsUnnamed = attrs.IsUnnamed
		node.ExtraDims = attrs.ExtraDims
	}
	node.LeadingTrivia = conv.takeLeading(start)
	return node, nil
}

func moduleStrategy(conv *Converter, idx int, children []*Node) (*Node, error) {
	node, start, _, err := baseNode(conv, idx, children)
	if err != nil {
		return nil, err
	}
	attrs, ok := conv.tree.ModuleAttrsOf(idx)
	if !ok {
		return nil, invalidStructure(conv, idx, node.Kind.String(), "module declaration missing required ModuleAttrs")
	}
	node.Name = attrs.Name
	node.IsOpen = attrs.IsOpen
	node.LeadingTrivia = conv.takeLeading(start)
	return node, nil
}

func requiresStrategy(conv *Converter, idx int, children []*Node) (*Node, error) {
	node, start, _, err := baseNode(conv, idx, children)
	if err != nil {
		return nil, err
	}
	if attrs, ok := conv.tree.RequiresAttrsOf(idx); ok {
		node.Name = attrs.ModuleName
		node.IsTransitive = attrs.Transitive
		node.IsStaticPhase = attrs.StaticPhase
	}
	node.LeadingTrivia = conv.takeLeading(start)
	return node, nil
}

func exportsOpensStrategy(conv *Converter, idx int, children []*Node) (*Node, error) {
	node, start, _, err := baseNode(conv, idx, children)
	if err != nil {
		return nil, err
	}
	if attrs, ok := conv.tree.ExportsOpensAttrsOf(idx); ok {
		node.Name = attrs.PackageName
		node.Targets = attrs.Targets
	}
	node.LeadingTrivia = conv.takeLeading(start)
	return node, nil
}

func providesStrategy(conv *Converter, idx int, children []*Node) (*Node, error) {
	node, start, _, err := baseNode(conv, idx, children)
	if err != nil {
		return nil, err
	}
	if attrs, ok := conv.tree.ProvidesAttrsOf(idx); ok {
		node.Name = attrs.Service
		node.Implementations = attrs.Implementations
	}
	node.LeadingTrivia = conv.takeLeading(start)
	return node, nil
}

func usesStrategy(conv *Converter, idx int, children []*Node) (*Node, error) {
	node, start, _, err := baseNode(conv, idx, children)
	if err != nil {
		return nil, err
	}
	if attrs, ok := conv.tree.UsesAttrsOf(idx); ok {
		node.Name = attrs.Service
	}
	node.LeadingTrivia = conv.takeLeading(start)
	return node, nil
}
