package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/styler/internal/arena"
	"github.com/oxhq/styler/internal/parser"
)

func mustParse(t *testing.T, src string, version int) *parser.Result {
	t.Helper()
	p, err := parser.New(src, version)
	require.NoError(t, err)
	res, err := p.Parse()
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	return res
}

func TestConvertBuildsClassDeclarationWithName(t *testing.T) {
	src := "package com.example;\n\npublic class Widget {\n}\n"
	res := mustParse(t, src, 17)

	root, err := Convert(src, 17, res.Tree, res.Root, res.Trivia)
	require.NoError(t, err)
	require.Equal(t, arena.KindCompilationUnit, root.Kind)

	class := root.Find(func(n *Node) bool { return n.Kind == arena.KindClassDeclaration })
	require.NotNil(t, class)
	assert.Equal(t, "Widget", class.Name)
}

func TestConvertAttachesLeadingComment(t *testing.T) {
	src := "class A {\n  // count of things\n  int count;\n}\n"
	res := mustParse(t, src, 17)

	root, err := Convert(src, 17, res.Tree, res.Root, res.Trivia)
	require.NoError(t, err)

	field := root.Find(func(n *Node) bool { return n.Kind == arena.KindFieldDeclaration })
	require.NotNil(t, field)

	var leaf *Node
	field.Walk(func(n *Node) {
		if leaf == nil && len(n.LeadingTrivia) > 0 {
			leaf = n
		}
	})
	require.NotNil(t, leaf, "expected some descendant of the field to carry the leading comment")
	assert.Contains(t, leaf.LeadingTrivia[0].Text, "count of things")
}

func TestConvertAttachesTrailingSameLineComment(t *testing.T) {
	src := "class A {\n  int count; // trailing\n}\n"
	res := mustParse(t, src, 17)

	root, err := Convert(src, 17, res.Tree, res.Root, res.Trivia)
	require.NoError(t, err)

	field := root.Find(func(n *Node) bool { return n.Kind == arena.KindFieldDeclaration })
	require.NotNil(t, field)

	var found bool
	field.Walk(func(n *Node) {
		for _, tr := range n.TrailingTrivia {
			if tr.Text == "// trailing" {
				found = true
			}
		}
	})
	assert.True(t, found, "trailing same-line comment should attach to a leaf within the field declaration")
}

func TestConvertRecordDeclarationCarriesSealedFlags(t *testing.T) {
	src := "sealed interface Shape permits Circle {}\n" +
		"record Circle(int radius) implements Shape {}\n"
	res := mustParse(t, src, 21)

	root, err := Convert(src, 21, res.Tree, res.Root, res.Trivia)
	require.NoError(t, err)

	iface := root.Find(func(n *Node) bool { return n.Kind == arena.KindInterfaceDeclaration })
	require.NotNil(t, iface)
	assert.True(t, iface.IsSealed)

	record := root.Find(func(n *Node) bool { return n.Kind == arena.KindRecordDeclaration })
	require.NotNil(t, record)
	assert.Equal(t, "Circle", record.Name)
}

func TestExtractImportsOrdersRegularsBeforeStatics(t *testing.T) {
	src := "package p;\n" +
		"import java.util.List;\n" +
		"import static java.util.Collections.emptyList;\n" +
		"import java.util.Map;\n" +
		"import static java.lang.Math.PI;\n" +
		"class A {}\n"
	res := mustParse(t, src, 17)

	root, err := Convert(src, 17, res.Tree, res.Root, res.Trivia)
	require.NoError(t, err)

	lineOf := func(offset int) int {
		line := 1
		for i := 0; i < offset && i < len(src); i++ {
			if src[i] == '\n' {
				line++
			}
		}
		return line
	}

	records := ExtractImports(root, lineOf)
	require.Len(t, records, 4)

	assert.False(t, records[0].IsStatic)
	assert.Equal(t, "java.util.List", records[0].QualifiedName)
	assert.False(t, records[1].IsStatic)
	assert.Equal(t, "java.util.Map", records[1].QualifiedName)

	assert.True(t, records[2].IsStatic)
	assert.Equal(t, "java.util.Collections.emptyList", records[2].QualifiedName)
	assert.True(t, records[3].IsStatic)
	assert.Equal(t, "java.lang.Math.PI", records[3].QualifiedName)
}

func TestExtractImportsMarksWildcard(t *testing.T) {
	src := "import java.util.*;\nclass A {}\n"
	res := mustParse(t, src, 17)

	root, err := Convert(src, 17, res.Tree, res.Root, res.Trivia)
	require.NoError(t, err)

	records := ExtractImports(root, func(int) int { return 1 })
	require.Len(t, records, 1)
	assert.True(t, records[0].IsWildcard)
	assert.Equal(t, "java.util.*", records[0].QualifiedName)
}

func TestConvertRejectsDuplicateStrategyRegistration(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(arena.KindClassDeclaration, typeDeclStrategy))
	err := r.Register(arena.KindClassDeclaration, typeDeclStrategy)
	require.Error(t, err)
}

func TestConvertModuleDeclaration(t *testing.T) {
	src := "open module com.example.app {\n" +
		"  requires transitive java.sql;\n" +
		"  exports com.example.api to com.example.client;\n" +
		"  provides com.example.api.Service with com.example.impl.ServiceImpl;\n" +
		"  uses com.example.api.Plugin;\n" +
		"}\n"
	p, err := parser.New(src, 17)
	require.NoError(t, err)
	res, err := p.ParseModuleInfo()
	require.NoError(t, err)
	require.Empty(t, res.Errors)

	root, err := Convert(src, 17, res.Tree, res.Root, res.Trivia)
	require.NoError(t, err)
	assert.Equal(t, arena.KindModuleDeclaration, root.Kind)
	assert.True(t, root.IsOpen)
	assert.Equal(t, "com.example.app", root.Name)

	requires := root.Find(func(n *Node) bool { return n.Kind == arena.KindRequiresDirective })
	require.NotNil(t, requires)
	assert.True(t, requires.IsTransitive)
	assert.Equal(t, "java.sql", requires.Name)

	exports := root.Find(func(n *Node) bool { return n.Kind == arena.KindExportsDirective })
	require.NotNil(t, exports)
	assert.Equal(t, "com.example.api", exports.Name)
	assert.Equal(t, []string{"com.example.client"}, exports.Targets)

	provides := root.Find(func(n *Node) bool { return n.Kind == arena.KindProvidesDirective })
	require.NotNil(t, provides)
	assert.Equal(t, "com.example.api.Service", provides.Name)
	assert.Equal(t, []string{"com.example.impl.ServiceImpl"}, provides.Implementations)

	uses := root.Find(func(n *Node) bool { return n.Kind == arena.KindUsesDirective })
	require.NotNil(t, uses)
	assert.Equal(t, "com.example.api.Plugin", uses.Name)
}
