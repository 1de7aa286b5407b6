package convert

import (
	"strings"

	"github.com/oxhq/styler/internal/parser"
)

// stringTemplateStrategy converts a KindStringTemplateExpression node,
// recursively parsing each embedded `\{...}` interpolation span into its
// own expression subtree instead of leaving it folded into the raw
// lexeme.
func stringTemplateStrategy(conv *Converter, idx int, children []*Node) (*Node, error) {
	node, start, _, err := baseNode(conv, idx, children)
	if err != nil {
		return nil, err
	}
	if attrs, ok := conv.tree.LiteralAttrsOf(idx); ok {
		node.Lexeme = attrs.Lexeme
	}
	node.LiteralKind = LiteralStringTemplate
	node.LeadingTrivia = conv.takeLeading(start)

	for _, span := range findInterpolationSpans(node.Lexeme) {
		exprSrc := node.Lexeme[span.exprStart:span.exprEnd]
		child, cerr := conv.parseEmbeddedExpression(exprSrc, start+span.exprStart)
		if cerr != nil {
			return nil, cerr
		}
		if child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node, nil
}

type interpolationSpan struct {
	exprStart, exprEnd int // byte offsets into the lexeme, inside the `\{...}` braces
}

// findInterpolationSpans scans a string template's raw lexeme for each
// `\{...}` marker, tracking brace depth so a nested `{`/`}` produced by
// the embedded expression (a lambda body, an array initializer) doesn't
// end the span early.
func findInterpolationSpans(lexeme string) []interpolationSpan {
	var spans []interpolationSpan
	for i := 0; i < len(lexeme)-1; i++ {
		if lexeme[i] != '\\' || lexeme[i+1] != '{' {
			continue
		}
		exprStart := i + 2
		depth := 1
		j := exprStart
		for j < len(lexeme) && depth > 0 {
			switch lexeme[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			j++
		}
		if depth != 0 {
			break // unterminated interpolation: stop scanning
		}
		spans = append(spans, interpolationSpan{exprStart: exprStart, exprEnd: j - 1})
		i = j - 1
	}
	return spans
}

// parseEmbeddedExpression re-lexes and re-parses an interpolation span
// under the enclosing compilation unit's language version, then shifts
// the resulting subtree's positions so they land on the span's actual
// offset in the original source.
func (conv *Converter) parseEmbeddedExpression(exprSrc string, offsetInSrc int) (*Node, error) {
	if strings.TrimSpace(exprSrc) == "" {
		return nil, nil
	}
	p, err := parser.New(exprSrc, conv.version)
	if err != nil {
		return nil, err
	}
	result, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	child, err := ConvertWithRegistry(exprSrc, conv.version, result.Tree, result.Root, result.Trivia, conv.registry)
	if err != nil {
		return nil, err
	}
	offsetNode(child, offsetInSrc)
	return child, nil
}

func offsetNode(n *Node, delta int) {
	if n == nil {
		return
	}
	n.Start += delta
	n.End += delta
	for _, c := range n.Children {
		offsetNode(c, delta)
	}
}
