package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/styler/internal/arena"
)

func parseOK(t *testing.T, src string, version int) *Result {
	t.Helper()
	p, err := New(src, version)
	require.NoError(t, err)
	res, err := p.Parse()
	require.NoError(t, err)
	assert.Empty(t, res.Errors, "unexpected parse errors for:\n%s", src)
	return res
}

func findKind(tree *arena.Arena, root int, kind arena.NodeKind) int {
	k, err := tree.KindOf(root)
	if err == nil && k == kind {
		return root
	}
	children, err := tree.ChildrenOf(root)
	if err != nil {
		return arena.NullIndex
	}
	for _, c := range children {
		if found := findKind(tree, c, kind); found != arena.NullIndex {
			return found
		}
	}
	return arena.NullIndex
}

func TestParseClassWithFieldsAndMethod(t *testing.T) {
	src := `package com.example;

public class Widget {
    private final int count;

    public int getCount() {
        return count;
    }
}
`
	res := parseOK(t, src, 17)
	class := findKind(res.Tree, res.Root, arena.KindClassDeclaration)
	require.NotEqual(t, arena.NullIndex, class)

	method := findKind(res.Tree, res.Root, arena.KindMethodDeclaration)
	require.NotEqual(t, arena.NullIndex, method)

	ret := findKind(res.Tree, res.Root, arena.KindReturnStatement)
	require.NotEqual(t, arena.NullIndex, ret)
}

func TestParseGenericMethodCallWithGreaterThanHazard(t *testing.T) {
	src := `class A {
    void m() {
        Map<String, List<Integer>> m = new HashMap<String, List<Integer>>();
        int x = 1 >> 2;
        int y = 1 >>> 2;
        boolean b = 1 >= 2;
    }
}
`
	res := parseOK(t, src, 17)
	decl := findKind(res.Tree, res.Root, arena.KindLocalVariableDeclaration)
	require.NotEqual(t, arena.NullIndex, decl)
}

func TestParseEnhancedForAndClassicFor(t *testing.T) {
	src := `class A {
    void m(java.util.List<String> items) {
        for (String s : items) {
            System.out.println(s);
        }
        for (int i = 0; i < 10; i++) {
            System.out.println(i);
        }
    }
}
`
	res := parseOK(t, src, 17)
	enhanced := findKind(res.Tree, res.Root, arena.KindEnhancedForStatement)
	require.NotEqual(t, arena.NullIndex, enhanced)
	classic := findKind(res.Tree, res.Root, arena.KindForStatement)
	require.NotEqual(t, arena.NullIndex, classic)
}

func TestParseTryWithResourcesAndCatch(t *testing.T) {
	src := `class A {
    void m() throws Exception {
        try (AutoCloseable r = acquire()) {
            use(r);
        } catch (java.io.IOException | RuntimeException e) {
            throw e;
        } finally {
            cleanup();
        }
    }
}
`
	res := parseOK(t, src, 17)
	try := findKind(res.Tree, res.Root, arena.KindTryStatement)
	require.NotEqual(t, arena.NullIndex, try)
	catch := findKind(res.Tree, res.Root, arena.KindCatchClause)
	require.NotEqual(t, arena.NullIndex, catch)
}

func TestParseSwitchExpressionWithPatternLabels(t *testing.T) {
	src := `class A {
    String describe(Object o) {
        return switch (o) {
            case Integer i when i > 0 -> "positive int";
            case Integer i -> "int";
            case String s -> "string " + s;
            default -> "other";
        };
    }
}
`
	res := parseOK(t, src, 21)
	sw := findKind(res.Tree, res.Root, arena.KindSwitchExpression)
	require.NotEqual(t, arena.NullIndex, sw)
}

func TestParseLambdaAndMethodReference(t *testing.T) {
	src := `class A {
    void m() {
        Runnable r1 = () -> System.out.println("hi");
        java.util.function.Function<String, Integer> r2 = String::length;
        java.util.function.BiFunction<Integer, Integer, Integer> r3 = (a, b) -> a + b;
    }
}
`
	res := parseOK(t, src, 17)
	lambda := findKind(res.Tree, res.Root, arena.KindLambdaExpression)
	require.NotEqual(t, arena.NullIndex, lambda)
	methodRef := findKind(res.Tree, res.Root, arena.KindMethodReferenceExpression)
	require.NotEqual(t, arena.NullIndex, methodRef)
}

func TestParseRecordDeclaration(t *testing.T) {
	src := `record Point(int x, int y) {
    Point {
        if (x < 0) throw new IllegalArgumentException("x");
    }
}
`
	res := parseOK(t, src, 17)
	record := findKind(res.Tree, res.Root, arena.KindRecordDeclaration)
	require.NotEqual(t, arena.NullIndex, record)
	compact := findKind(res.Tree, res.Root, arena.KindCompactConstructorDeclaration)
	require.NotEqual(t, arena.NullIndex, compact)
}

func TestParseRecordDeclarationRejectedBelowVersion(t *testing.T) {
	src := `record Point(int x, int y) {}
`
	p, err := New(src, 8)
	require.NoError(t, err)
	_, err = p.Parse()
	require.NoError(t, err) // top-level recovery continues the parse
	res, err := New(src, 8)
	require.NoError(t, err)
	result, err := res.Parse()
	require.NoError(t, err)
	require.NotEmpty(t, result.Errors, "record declaration should be rejected under Java 8")
}

func TestParseSealedHierarchyRejectedBelowVersion(t *testing.T) {
	src := `sealed interface Shape permits Circle {}
class Circle implements Shape {}
`
	p, err := New(src, 8)
	require.NoError(t, err)
	res, err := p.Parse()
	require.NoError(t, err)
	assert.NotEmpty(t, res.Errors, "sealed modifier should be rejected under Java 8")
}

func TestParsePatternInstanceofVersionGated(t *testing.T) {
	src := `class A {
    void m(Object o) {
        if (o instanceof String s) {
            System.out.println(s);
        }
    }
}
`
	below, err := New(src, 8)
	require.NoError(t, err)
	belowRes, err := below.Parse()
	require.NoError(t, err)

	above, err := New(src, 17)
	require.NoError(t, err)
	aboveRes, err := above.Parse()
	require.NoError(t, err)
	assert.Empty(t, aboveRes.Errors)
	assert.NotEmpty(t, belowRes.Errors, "a pattern binding should be rejected under Java 8")
}

func TestParseModuleInfo(t *testing.T) {
	src := `module com.example.app {
    requires java.base;
    requires static java.sql;
    exports com.example.api;
    opens com.example.internal to com.example.friend;
}
`
	p, err := New(src, 17)
	require.NoError(t, err)
	res, err := p.ParseModuleInfo()
	require.NoError(t, err)
	require.Empty(t, res.Errors)

	kind, err := res.Tree.KindOf(res.Root)
	require.NoError(t, err)
	assert.Equal(t, arena.KindModuleDeclaration, kind)

	opens := findKind(res.Tree, res.Root, arena.KindOpensDirective)
	require.NotEqual(t, arena.NullIndex, opens)
}

func TestParseAnnotationsAndModifiers(t *testing.T) {
	src := `class A {
    @Deprecated
    @SuppressWarnings("unchecked")
    public static final int MAX = 10;
}
`
	res := parseOK(t, src, 17)
	field := findKind(res.Tree, res.Root, arena.KindFieldDeclaration)
	require.NotEqual(t, arena.NullIndex, field)
	ann := findKind(res.Tree, res.Root, arena.KindAnnotation)
	require.NotEqual(t, arena.NullIndex, ann)
}

func TestParseVarargsAndReceiverParameter(t *testing.T) {
	src := `class A {
    void m(A this, int first, int... rest) {
    }
}
`
	res := parseOK(t, src, 17)
	recv := findKind(res.Tree, res.Root, arena.KindReceiverParameter)
	require.NotEqual(t, arena.NullIndex, recv)
}
