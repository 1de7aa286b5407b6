package parser

import (
	"github.com/oxhq/styler/internal/arena"
	"github.com/oxhq/styler/internal/lexer"
)

// Context is the narrow view of parser state exposed to a Strategy:
// lookahead, token consumption, node allocation, and delegation back
// into the core grammar for sub-productions, without giving strategies
// direct field access to the Parser.
type Context struct {
	p     *Parser
	Phase Phase

	// atConstructorBodyStart is true only while parsing the first
	// statement of a constructor body, used by flexibleConstructorBodyStrategy
	// to enforce the pre-flexible-body restriction that an explicit
	// `this(...)`/`super(...)` invocation may only appear first.
	atConstructorBodyStart bool
}

// Version returns the language version this context was parsed under.
func (c *Context) Version() int { return c.p.version }

// Arena exposes the tree under construction so a Strategy can allocate and
// attach its own nodes.
func (c *Context) Arena() *arena.Arena { return c.p.tree }

func (c *Context) atEOF() bool {
	return c.p.pos >= len(c.p.tokens) || c.p.tokens[c.p.pos].Kind == lexer.EOF
}

// Peek returns the token `offset` positions ahead of the cursor (0 is the
// current token). Past the end of the stream it synthesizes an EOF token
// at the source's final offset.
func (c *Context) Peek(offset int) lexer.Token {
	idx := c.p.pos + offset
	if idx < 0 || idx >= len(c.p.tokens) {
		end := len(c.p.src)
		return lexer.Token{Kind: lexer.EOF, Start: end, End: end}
	}
	return c.p.tokens[idx]
}

// Current returns the token at the cursor.
func (c *Context) Current() lexer.Token { return c.Peek(0) }

// Check reports whether the current token has the given kind.
func (c *Context) Check(k lexer.Kind) bool { return c.Current().Kind == k }

// CheckAny reports whether the current token is one of the given kinds.
func (c *Context) CheckAny(kinds ...lexer.Kind) bool {
	cur := c.Current().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// Advance consumes and returns the current token.
func (c *Context) Advance() lexer.Token {
	tok := c.Current()
	if c.p.pos < len(c.p.tokens) {
		c.p.pos++
	}
	return tok
}

// Match consumes the current token if it has kind k, reporting whether it did.
func (c *Context) Match(k lexer.Kind) bool {
	if c.Check(k) {
		c.Advance()
		return true
	}
	return false
}

// Expect consumes the current token if it has kind k, else raises a
// ParseError naming what was expected.
func (c *Context) Expect(k lexer.Kind, what string) (lexer.Token, error) {
	if c.Check(k) {
		return c.Advance(), nil
	}
	tok := c.Current()
	if tok.Kind == lexer.Error {
		return tok, c.p.lexFaultAt(tok)
	}
	return tok, c.p.parseErrorAt(tok.Start, "expected "+what+", found "+tok.Kind.String())
}

// consumeSingleGT splits a composite token beginning with '>' so that a
// single '>' can close a generic type-argument list even when the lexer
// produced `>>`, `>>>`, `>=`, `>>=`, or `>>>=`. It rewrites the remaining suffix back onto the token stream in
// place of the consumed token.
func (c *Context) consumeSingleGT() error {
	tok := c.Current()
	suffix, ok := gtSuffix(tok.Kind)
	if !ok {
		_, err := c.Expect(lexer.Gt, "'>'")
		return err
	}
	if suffix == lexer.EOF {
		c.Advance()
		return nil
	}
	rewritten := lexer.Token{Kind: suffix, Start: tok.Start + 1, End: tok.End, Text: tok.Text}
	c.p.tokens[c.p.pos] = rewritten
	if c.p.pos < len(c.p.leading) {
		c.p.leading[c.p.pos] = nil
	}
	return nil
}

// gtSuffix maps a token that begins with '>' to the kind remaining after
// peeling off exactly one '>' character, greater-than table.
func gtSuffix(k lexer.Kind) (lexer.Kind, bool) {
	switch k {
	case lexer.Gt:
		return lexer.EOF, true // fully consumed, nothing remains
	case lexer.RShift: // ">>"
		return lexer.Gt, true
	case lexer.URShift: // ">>>"
		return lexer.RShift, true
	case lexer.GtEq: // ">="
		return lexer.Eq, true
	case lexer.RShiftEq: // ">>="
		return lexer.GtEq, true
	case lexer.URShiftEq: // ">>>="
		return lexer.RShiftEq, true
	default:
		return lexer.EOF, false
	}
}

// expectGTInGeneric is the generic-type-argument-list-closing counterpart
// to Expect: it accepts any '>'-prefixed composite operator and splits it,
// rather than failing when the lexer produced `>>` for nested generics
// like `List<List<String>>`.
func (c *Context) expectGTInGeneric() error {
	if _, ok := gtSuffix(c.Current().Kind); !ok {
		tok := c.Current()
		return c.p.parseErrorAt(tok.Start, "expected '>' to close type argument list, found "+tok.Kind.String())
	}
	return c.consumeSingleGT()
}

// errorf raises a ParseError positioned at the current token.
func (c *Context) errorf(message string) error {
	return c.p.parseErrorAt(c.Current().Start, message)
}

// synchronize advances past tokens until it finds one in `stops` (or EOF),
// discarding everything in between. Used for statement/declaration-level
// error recovery so a single malformed construct doesn't abort the whole
// parse.
func (c *Context) synchronize(stops map[lexer.Kind]bool) {
	for !c.atEOF() {
		if stops[c.Current().Kind] {
			return
		}
		c.Advance()
	}
}

var topLevelRecoveryTokens = map[lexer.Kind]bool{
	lexer.KwClass: true, lexer.KwInterface: true, lexer.KwEnum: true,
	lexer.KwRecord: true, lexer.At: true, lexer.Semicolon: true,
}

var memberRecoveryTokens = map[lexer.Kind]bool{
	lexer.RBrace: true, lexer.Semicolon: true,
	lexer.KwPublic: true, lexer.KwPrivate: true, lexer.KwProtected: true,
	lexer.KwStatic: true, lexer.KwClass: true, lexer.KwInterface: true,
	lexer.KwEnum: true, lexer.KwRecord: true,
}

var statementRecoveryTokens = map[lexer.Kind]bool{
	lexer.Semicolon: true, lexer.RBrace: true,
}

// pollDeadline exposes the parser's cooperative cancellation check to
// grammar productions that loop (blocks, argument lists, member lists).
func (c *Context) pollDeadline(stage string) error { return c.p.pollDeadline(stage) }
