// Package parser implements Styler's recursive-descent parser: a
// hand-written grammar over internal/lexer's token stream that allocates
// nodes into an internal/arena.Arena, consulting a version-gated
// StrategyRegistry wherever the grammar branches on configured language
// version.
package parser

import (
	"time"

	"github.com/oxhq/styler/internal/arena"
	"github.com/oxhq/styler/internal/diag"
	"github.com/oxhq/styler/internal/lexer"
)

// Trivia is a comment or whitespace run captured between two significant
// tokens, destined for attachment during conversion.
type Trivia struct {
	Kind  lexer.Kind
	Start int
	End   int
	Text  string
}

// Parser drives a single parse of one source file into an Arena-backed
// tree. Construct with New and call Parse or ParseModuleInfo exactly once;
// a Parser is not reusable across sources.
type Parser struct {
	src     string
	tokens  []lexer.Token   // significant tokens only, in source order
	leading [][]Trivia      // leading trivia attached to tokens[i], by index
	pos     int

	tree     *arena.Arena
	version  int
	registry *StrategyRegistry

	deadline    time.Time
	hasDeadline bool

	errors []diag.ParseError
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithDeadline installs a cooperative cancellation deadline: long parses
// poll it at statement/declaration boundaries and fail fast with
// DeadlineExceededFault rather than running unbounded.
func WithDeadline(d time.Time) Option {
	return func(p *Parser) {
		p.deadline = d
		p.hasDeadline = true
	}
}

// WithStrategyRegistry overrides the default version-gated strategy table,
// primarily for tests exercising a single strategy in isolation.
func WithStrategyRegistry(r *StrategyRegistry) Option {
	return func(p *Parser) { p.registry = r }
}

// New constructs a Parser for src at the given language version.
func New(src string, version int, opts ...Option) (*Parser, error) {
	all := lexer.TokenizeAll(src)

	p := &Parser{
		src:      src,
		version:  version,
		tree:     nil,
		registry: DefaultStrategyRegistry(),
	}

	tokens := make([]lexer.Token, 0, len(all))
	leading := make([][]Trivia, 0, len(all))
	var pending []Trivia
	for _, tok := range all {
		if tok.Kind.IsTrivia() {
			pending = append(pending, Trivia{Kind: tok.Kind, Start: tok.Start, End: tok.End, Text: tok.Text})
			continue
		}
		tokens = append(tokens, tok)
		leading = append(leading, pending)
		pending = nil
	}
	p.tokens = tokens
	p.leading = leading

	tree, err := arena.New(estimateNodeCapacity(len(tokens)))
	if err != nil {
		return nil, err
	}
	p.tree = tree

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func estimateNodeCapacity(tokenCount int) int {
	if tokenCount < 8 {
		return 8
	}
	return tokenCount
}

// Result bundles the parse output: the populated arena, its root
// compilation-unit index, leading-trivia table (for internal/convert), and
// any non-fatal diagnostics accumulated during error recovery.
type Result struct {
	Tree    *arena.Arena
	Root    int
	Trivia  [][]Trivia
	Errors  []diag.ParseError
}

// Parse parses a full compilation unit: optional package declaration,
// imports (including module imports), then a sequence of top-level type
// declarations.
func (p *Parser) Parse() (*Result, error) {
	root, err := p.tree.Allocate(arena.KindCompilationUnit, 0, len(p.src))
	if err != nil {
		return nil, err
	}

	ctx := &Context{p: p, Phase: PhaseTopLevel}

	for !ctx.atEOF() {
		if err := p.pollDeadline("Parse"); err != nil {
			return nil, err
		}
		child, perr := ctx.parseTopLevelItem()
		if perr != nil {
			p.recordError(perr)
			ctx.synchronize(topLevelRecoveryTokens)
			continue
		}
		if child != arena.NullIndex {
			if err := p.tree.AppendChild(root, child); err != nil {
				return nil, err
			}
		}
	}

	return &Result{Tree: p.tree, Root: root, Trivia: p.leading, Errors: p.errors}, nil
}

// ParseExpression parses src as a single, standalone expression rather
// than a full compilation unit. Used to re-parse an embedded `\{...}`
// interpolation span lifted out of a string template.
func (p *Parser) ParseExpression() (*Result, error) {
	ctx := &Context{p: p, Phase: PhaseExpression}
	root, err := ctx.parseExpression()
	if err != nil {
		return nil, err
	}
	if !ctx.atEOF() {
		tok := ctx.Current()
		return nil, p.parseErrorAt(tok.Start, "unexpected trailing "+tok.Kind.String()+" after expression")
	}
	return &Result{Tree: p.tree, Root: root, Trivia: p.leading, Errors: p.errors}, nil
}

// ParseModuleInfo parses a `module-info.java`-style compilation unit: an
// optional `open` modifier, `module` declaration, and directive list.
func (p *Parser) ParseModuleInfo() (*Result, error) {
	ctx := &Context{p: p, Phase: PhaseModule}
	root, err := ctx.parseModuleDeclaration()
	if err != nil {
		return nil, err
	}
	return &Result{Tree: p.tree, Root: root, Trivia: p.leading, Errors: p.errors}, nil
}

func (p *Parser) recordError(err error) {
	if pe, ok := toParseError(err); ok {
		p.errors = append(p.errors, pe)
	}
}

func toParseError(err error) (diag.ParseError, bool) {
	switch e := err.(type) {
	case diag.ParseError:
		return e, true
	case diag.VersionFault:
		return e.ParseError, true
	case diag.LexFault:
		return e.ParseError, true
	default:
		return diag.ParseError{}, false
	}
}

func (p *Parser) pollDeadline(stage string) error {
	if p.hasDeadline && !time.Now().Before(p.deadline) {
		return diag.DeadlineExceededFault{Stage: stage}
	}
	return nil
}

// positionAt computes the 1-based line/column for a byte offset by
// scanning the source once; acceptable here since it is only called when
// constructing a diagnostic, never on the hot path.
func (p *Parser) positionAt(offset int) diag.Position {
	line, col := 1, 1
	limit := offset
	if limit > len(p.src) {
		limit = len(p.src)
	}
	for i := 0; i < limit; i++ {
		if p.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return diag.Position{Offset: offset, Line: line, Column: col}
}

func (p *Parser) parseErrorAt(offset int, message string) diag.ParseError {
	pos := p.positionAt(offset)
	return diag.ParseError{Position: pos.Offset, Line: pos.Line, Column: pos.Column, Message: message}
}

// lexFaultAt wraps a lexer Error token in a LexFault, preserving its raw
// lexeme for diagnostics rather than collapsing it into a generic
// "unexpected token" ParseError.
func (p *Parser) lexFaultAt(tok lexer.Token) diag.LexFault {
	pos := p.positionAt(tok.Start)
	return diag.LexFault{
		ParseError: diag.ParseError{Position: pos.Offset, Line: pos.Line, Column: pos.Column, Message: "unrecognized input"},
		Lexeme:     tok.Text,
	}
}
