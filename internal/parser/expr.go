package parser

import (
	"github.com/oxhq/styler/internal/arena"
	"github.com/oxhq/styler/internal/lexer"
)

// precedence levels, lowest to highest, matching the expression
// grammar (assignment is right-associative and lowest; postfix/primary is
// highest).
const (
	precNone = iota
	precAssignment
	precConditional // ternary
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational // also instanceof
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
)

var assignmentOps = map[lexer.Kind]bool{
	lexer.Eq: true, lexer.PlusEq: true, lexer.MinusEq: true, lexer.StarEq: true,
	lexer.SlashEq: true, lexer.PercentEq: true, lexer.AmpEq: true, lexer.PipeEq: true,
	lexer.CaretEq: true, lexer.LShiftEq: true, lexer.RShiftEq: true, lexer.URShiftEq: true,
}

var binaryPrecedence = map[lexer.Kind]int{
	lexer.PipePipe: precLogicalOr,
	lexer.AmpAmp:   precLogicalAnd,
	lexer.Pipe:     precBitOr,
	lexer.Caret:    precBitXor,
	lexer.Amp:      precBitAnd,
	lexer.EqEq:     precEquality, lexer.BangEq: precEquality,
	lexer.Lt: precRelational, lexer.LtEq: precRelational,
	lexer.Gt: precRelational, lexer.GtEq: precRelational,
	lexer.KwInstanceof: precRelational,
	lexer.LShift:       precShift, lexer.RShift: precShift, lexer.URShift: precShift,
	lexer.Plus: precAdditive, lexer.Minus: precAdditive,
	lexer.Star: precMultiplicative, lexer.Slash: precMultiplicative, lexer.Percent: precMultiplicative,
}

// parseExpression parses a full expression,
// entering at assignment precedence.
func (c *Context) parseExpression() (int, error) {
	return c.parseAssignment()
}

func (c *Context) parseAssignment() (int, error) {
	if c.looksLikeLambda() {
		return c.parseLambda()
	}

	left, err := c.parseConditional()
	if err != nil {
		return arena.NullIndex, err
	}
	if assignmentOps[c.Current().Kind] {
		start := c.startOf(left)
		c.Advance()
		right, rerr := c.parseAssignment()
		if rerr != nil {
			return arena.NullIndex, rerr
		}
		idx, aerr := c.p.tree.Allocate(arena.KindAssignmentExpression, start, c.Peek(-1).End)
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		if err := c.p.tree.AppendChild(idx, left); err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.AppendChild(idx, right); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil
	}
	return left, nil
}

func (c *Context) parseConditional() (int, error) {
	cond, err := c.parseBinary(precLogicalOr)
	if err != nil {
		return arena.NullIndex, err
	}
	if !c.Match(lexer.Question) {
		return cond, nil
	}
	start := c.startOf(cond)
	thenExpr, terr := c.parseExpression()
	if terr != nil {
		return arena.NullIndex, terr
	}
	if _, err := c.Expect(lexer.Colon, "':'"); err != nil {
		return arena.NullIndex, err
	}
	elseExpr, eerr := c.parseConditional()
	if eerr != nil {
		return arena.NullIndex, eerr
	}
	idx, aerr := c.p.tree.Allocate(arena.KindConditionalExpression, start, c.Peek(-1).End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	for _, child := range []int{cond, thenExpr, elseExpr} {
		if err := c.p.tree.AppendChild(idx, child); err != nil {
			return arena.NullIndex, err
		}
	}
	return idx, nil
}

// parseBinary implements precedence climbing down to precUnary. instanceof
// is handled specially because its right operand is a type (optionally
// followed by a binding pattern), not an expression.
func (c *Context) parseBinary(minPrec int) (int, error) {
	left, err := c.parseUnary()
	if err != nil {
		return arena.NullIndex, err
	}
	for {
		op := c.Current().Kind
		prec, ok := binaryPrecedence[op]
		if !ok || prec < minPrec {
			return left, nil
		}
		if op == lexer.KwInstanceof {
			left, err = c.parseInstanceof(left)
			if err != nil {
				return arena.NullIndex, err
			}
			continue
		}
		start := c.startOf(left)
		c.Advance()
		right, rerr := c.parseBinary(prec + 1)
		if rerr != nil {
			return arena.NullIndex, rerr
		}
		idx, aerr := c.p.tree.Allocate(arena.KindBinaryExpression, start, c.Peek(-1).End)
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		if err := c.p.tree.AppendChild(idx, left); err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.AppendChild(idx, right); err != nil {
			return arena.NullIndex, err
		}
		left = idx
	}
}

// parseInstanceof handles both the classic form (`x instanceof Foo`) and
// pattern-matching form (`x instanceof Foo f`, `x instanceof Foo f when g`,
// `x instanceof Point(int px, int py)`) for record deconstruction.
func (c *Context) parseInstanceof(left int) (int, error) {
	start := c.startOf(left)
	patternCapable := c.p.registry.Resolve(c.p.version, PhaseExpression, c) != nil
	c.Advance() // 'instanceof'
	typ, err := c.parseType()
	if err != nil {
		return arena.NullIndex, err
	}
	idx, aerr := c.p.tree.Allocate(arena.KindInstanceofExpression, start, c.Peek(-1).End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.AppendChild(idx, left); err != nil {
		return arena.NullIndex, err
	}
	if err := c.p.tree.AppendChild(idx, typ); err != nil {
		return arena.NullIndex, err
	}

	if !patternCapable {
		return idx, nil
	}

	if c.Check(lexer.LParen) {
		pat, perr := c.parseRecordPattern(typ)
		if perr != nil {
			return arena.NullIndex, perr
		}
		if err := c.p.tree.AppendChild(idx, pat); err != nil {
			return arena.NullIndex, err
		}
	} else if c.Check(lexer.Identifier) {
		name := c.Advance()
		patStart := c.startOf(typ)
		pat, perr := c.p.tree.Allocate(arena.KindTypePattern, patStart, name.End)
		if perr != nil {
			return arena.NullIndex, perr
		}
		if err := c.p.tree.SetIdentifierAttrs(pat, arena.IdentifierAttrs{Name: name.Text}); err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.AppendChild(pat, typ); err != nil {
			return arena.NullIndex, err
		}
		finalPat := pat
		if c.Check(lexer.KwWhen) {
			c.Advance()
			guard, gerr := c.parseExpression()
			if gerr != nil {
				return arena.NullIndex, gerr
			}
			gp, gaerr := c.p.tree.Allocate(arena.KindGuardedPattern, patStart, c.Peek(-1).End)
			if gaerr != nil {
				return arena.NullIndex, gaerr
			}
			if err := c.p.tree.AppendChild(gp, pat); err != nil {
				return arena.NullIndex, err
			}
			if err := c.p.tree.AppendChild(gp, guard); err != nil {
				return arena.NullIndex, err
			}
			finalPat = gp
		}
		if err := c.p.tree.AppendChild(idx, finalPat); err != nil {
			return arena.NullIndex, err
		}
	}

	return idx, nil
}

// parseRecordPattern parses `Point(int x, int y)` pattern deconstruction.
func (c *Context) parseRecordPattern(typ int) (int, error) {
	start := c.startOf(typ)
	c.Advance() // '('
	idx, err := c.p.tree.Allocate(arena.KindRecordPattern, start, start)
	if err != nil {
		return arena.NullIndex, err
	}
	if err := c.p.tree.AppendChild(idx, typ); err != nil {
		return arena.NullIndex, err
	}
	for !c.Check(lexer.RParen) && !c.atEOF() {
		componentType, terr := c.parseType()
		if terr != nil {
			return arena.NullIndex, terr
		}
		nameTok, nerr := c.Expect(lexer.Identifier, "pattern component name")
		if nerr != nil {
			return arena.NullIndex, nerr
		}
		pp, paerr := c.p.tree.Allocate(arena.KindTypePattern, c.startOf(componentType), nameTok.End)
		if paerr != nil {
			return arena.NullIndex, paerr
		}
		if err := c.p.tree.SetIdentifierAttrs(pp, arena.IdentifierAttrs{Name: nameTok.Text}); err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.AppendChild(pp, componentType); err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.AppendChild(idx, pp); err != nil {
			return arena.NullIndex, err
		}
		if !c.Match(lexer.Comma) {
			break
		}
	}
	closeTok, cerr := c.Expect(lexer.RParen, "')'")
	if cerr != nil {
		return arena.NullIndex, cerr
	}
	_ = closeTok
	return idx, nil
}

var unaryOps = map[lexer.Kind]bool{
	lexer.Plus: true, lexer.Minus: true, lexer.Bang: true, lexer.Tilde: true,
	lexer.PlusPlus: true, lexer.MinusMinus: true,
}

func (c *Context) parseUnary() (int, error) {
	if unaryOps[c.Current().Kind] {
		start := c.Current().Start
		c.Advance()
		operand, err := c.parseUnary()
		if err != nil {
			return arena.NullIndex, err
		}
		idx, aerr := c.p.tree.Allocate(arena.KindUnaryExpression, start, c.Peek(-1).End)
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		if err := c.p.tree.AppendChild(idx, operand); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil
	}
	if c.Check(lexer.LParen) && c.looksLikeCast() {
		return c.parseCast()
	}
	return c.parsePostfix()
}

// looksLikeCast performs bounded lookahead to distinguish `(Type) expr`
// from a parenthesized expression, without backtracking the main cursor.
func (c *Context) looksLikeCast() bool {
	if c.Peek(1).Kind != lexer.Identifier && !primitiveTypeKeywords[c.Peek(1).Kind] {
		return false
	}
	// Scan forward for the matching ')', bailing out on constructs that
	// can only appear in an expression (assignment, comma at depth 0, a
	// binary operator immediately after the name).
	depth := 0
	for i := 0; ; i++ {
		tok := c.Peek(i)
		switch tok.Kind {
		case lexer.LParen:
			depth++
		case lexer.RParen:
			depth--
			if depth == 0 {
				next := c.Peek(i + 1).Kind
				switch next {
				case lexer.Identifier, lexer.IntLiteral, lexer.LongLiteral, lexer.FloatLiteral,
					lexer.DoubleLiteral, lexer.StringLiteral, lexer.CharLiteral, lexer.BooleanLiteral,
					lexer.NullLiteral, lexer.KwNew, lexer.KwThis, lexer.KwSuper, lexer.LParen,
					lexer.Bang, lexer.Tilde:
					return true
				default:
					return false
				}
			}
		case lexer.EOF, lexer.Semicolon:
			return false
		}
		if i > 64 {
			return false
		}
	}
}

func (c *Context) parseCast() (int, error) {
	start := c.Advance().Start // '('
	typ, err := c.parseType()
	if err != nil {
		return arena.NullIndex, err
	}
	idx, aerr := c.p.tree.Allocate(arena.KindCastExpression, start, start)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	bounds := []int{typ}
	for c.Match(lexer.Amp) {
		extra, eerr := c.parseType()
		if eerr != nil {
			return arena.NullIndex, eerr
		}
		bounds = append(bounds, extra)
	}
	if len(bounds) > 1 {
		inter, ierr := c.p.tree.Allocate(arena.KindIntersectionType, c.startOf(bounds[0]), c.Peek(-1).End)
		if ierr != nil {
			return arena.NullIndex, ierr
		}
		for _, b := range bounds {
			if err := c.p.tree.AppendChild(inter, b); err != nil {
				return arena.NullIndex, err
			}
		}
		typ = inter
	}
	if _, err := c.Expect(lexer.RParen, "')'"); err != nil {
		return arena.NullIndex, err
	}
	if err := c.p.tree.AppendChild(idx, typ); err != nil {
		return arena.NullIndex, err
	}
	operand, operr := c.parseUnary()
	if operr != nil {
		return arena.NullIndex, operr
	}
	if err := c.p.tree.AppendChild(idx, operand); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func (c *Context) parsePostfix() (int, error) {
	expr, err := c.parsePrimary()
	if err != nil {
		return arena.NullIndex, err
	}
	for {
		switch c.Current().Kind {
		case lexer.Dot:
			c.Advance()
			if c.Check(lexer.ColonColon) { // shouldn't happen, guard anyway
				break
			}
			nameTok, nerr := c.Expect(lexer.Identifier, "member name")
			if nerr != nil {
				return arena.NullIndex, nerr
			}
			if c.Check(lexer.LParen) {
				expr, err = c.finishCall(expr, nameTok)
				if err != nil {
					return arena.NullIndex, err
				}
				continue
			}
			idx, aerr := c.p.tree.Allocate(arena.KindFieldAccessExpression, c.startOf(expr), nameTok.End)
			if aerr != nil {
				return arena.NullIndex, aerr
			}
			if err := c.p.tree.AppendChild(idx, expr); err != nil {
				return arena.NullIndex, err
			}
			if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: nameTok.Text}); err != nil {
				return arena.NullIndex, err
			}
			expr = idx
		case lexer.ColonColon:
			c.Advance()
			var nameTok lexer.Token
			if c.Check(lexer.KwNew) {
				nameTok = c.Advance()
			} else {
				var nerr error
				nameTok, nerr = c.Expect(lexer.Identifier, "method reference target")
				if nerr != nil {
					return arena.NullIndex, nerr
				}
			}
			idx, aerr := c.p.tree.Allocate(arena.KindMethodReferenceExpression, c.startOf(expr), nameTok.End)
			if aerr != nil {
				return arena.NullIndex, aerr
			}
			if err := c.p.tree.AppendChild(idx, expr); err != nil {
				return arena.NullIndex, err
			}
			if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: nameTok.Text}); err != nil {
				return arena.NullIndex, err
			}
			expr = idx
		case lexer.LBracket:
			c.Advance()
			index, ierr := c.parseExpression()
			if ierr != nil {
				return arena.NullIndex, ierr
			}
			closeTok, cerr := c.Expect(lexer.RBracket, "']'")
			if cerr != nil {
				return arena.NullIndex, cerr
			}
			idx, aerr := c.p.tree.Allocate(arena.KindArrayAccessExpression, c.startOf(expr), closeTok.End)
			if aerr != nil {
				return arena.NullIndex, aerr
			}
			if err := c.p.tree.AppendChild(idx, expr); err != nil {
				return arena.NullIndex, err
			}
			if err := c.p.tree.AppendChild(idx, index); err != nil {
				return arena.NullIndex, err
			}
			expr = idx
		case lexer.PlusPlus, lexer.MinusMinus:
			tok := c.Advance()
			idx, aerr := c.p.tree.Allocate(arena.KindPostfixExpression, c.startOf(expr), tok.End)
			if aerr != nil {
				return arena.NullIndex, aerr
			}
			if err := c.p.tree.AppendChild(idx, expr); err != nil {
				return arena.NullIndex, err
			}
			expr = idx
		default:
			return expr, nil
		}
	}
}

func (c *Context) finishCall(receiver int, nameTok lexer.Token) (int, error) {
	args, closeTok, err := c.parseArgumentList()
	if err != nil {
		return arena.NullIndex, err
	}
	idx, aerr := c.p.tree.Allocate(arena.KindCallExpression, c.startOf(receiver), closeTok.End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: nameTok.Text}); err != nil {
		return arena.NullIndex, err
	}
	if err := c.p.tree.AppendChild(idx, receiver); err != nil {
		return arena.NullIndex, err
	}
	for _, a := range args {
		if err := c.p.tree.AppendChild(idx, a); err != nil {
			return arena.NullIndex, err
		}
	}
	return idx, nil
}

func (c *Context) parseArgumentList() ([]int, lexer.Token, error) {
	if _, err := c.Expect(lexer.LParen, "'('"); err != nil {
		return nil, lexer.Token{}, err
	}
	var args []int
	for !c.Check(lexer.RParen) && !c.atEOF() {
		if err := c.pollDeadline("parseArgumentList"); err != nil {
			return nil, lexer.Token{}, err
		}
		arg, err := c.parseExpression()
		if err != nil {
			return nil, lexer.Token{}, err
		}
		args = append(args, arg)
		if !c.Match(lexer.Comma) {
			break
		}
	}
	closeTok, err := c.Expect(lexer.RParen, "')'")
	if err != nil {
		return nil, lexer.Token{}, err
	}
	return args, closeTok, nil
}

func (c *Context) parsePrimary() (int, error) {
	tok := c.Current()
	switch tok.Kind {
	case lexer.IntLiteral, lexer.LongLiteral, lexer.FloatLiteral, lexer.DoubleLiteral,
		lexer.StringLiteral, lexer.TextBlockLiteral, lexer.CharLiteral,
		lexer.BooleanLiteral, lexer.NullLiteral:
		c.Advance()
		idx, err := c.p.tree.Allocate(arena.KindLiteralExpression, tok.Start, tok.End)
		if err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.SetLiteralAttrs(idx, arena.LiteralAttrs{Lexeme: tok.Text}); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil
	case lexer.StringTemplateLiteral:
		c.Advance()
		idx, err := c.p.tree.Allocate(arena.KindStringTemplateExpression, tok.Start, tok.End)
		if err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.SetLiteralAttrs(idx, arena.LiteralAttrs{Lexeme: tok.Text}); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil
	case lexer.Identifier, lexer.KwVar:
		c.Advance()
		if c.Check(lexer.LParen) {
			args, closeTok, err := c.parseArgumentList()
			if err != nil {
				return arena.NullIndex, err
			}
			idx, aerr := c.p.tree.Allocate(arena.KindCallExpression, tok.Start, closeTok.End)
			if aerr != nil {
				return arena.NullIndex, aerr
			}
			if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: tok.Text}); err != nil {
				return arena.NullIndex, err
			}
			for _, a := range args {
				if err := c.p.tree.AppendChild(idx, a); err != nil {
					return arena.NullIndex, err
				}
			}
			return idx, nil
		}
		idx, err := c.p.tree.Allocate(arena.KindIdentifierExpression, tok.Start, tok.End)
		if err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: tok.Text}); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil
	case lexer.KwThis, lexer.KwSuper:
		c.Advance()
		if c.Check(lexer.LParen) {
			args, closeTok, err := c.parseArgumentList()
			if err != nil {
				return arena.NullIndex, err
			}
			idx, aerr := c.p.tree.Allocate(arena.KindExplicitConstructorInvocation, tok.Start, closeTok.End)
			if aerr != nil {
				return arena.NullIndex, aerr
			}
			if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: tok.Text}); err != nil {
				return arena.NullIndex, err
			}
			for _, a := range args {
				if err := c.p.tree.AppendChild(idx, a); err != nil {
					return arena.NullIndex, err
				}
			}
			return idx, nil
		}
		idx, err := c.p.tree.Allocate(arena.KindIdentifierExpression, tok.Start, tok.End)
		if err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: tok.Text}); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil
	case lexer.LParen:
		c.Advance()
		inner, err := c.parseExpression()
		if err != nil {
			return arena.NullIndex, err
		}
		if _, err := c.Expect(lexer.RParen, "')'"); err != nil {
			return arena.NullIndex, err
		}
		return inner, nil
	case lexer.KwNew:
		return c.parseNew()
	case lexer.KwSwitch:
		return c.parseSwitchExpression()
	case lexer.Error:
		return arena.NullIndex, c.p.lexFaultAt(tok)
	default:
		return arena.NullIndex, c.p.parseErrorAt(tok.Start, "expected expression, found "+tok.Kind.String())
	}
}

func (c *Context) parseNew() (int, error) {
	start := c.Advance().Start // 'new'
	typ, err := c.parseType()
	if err != nil {
		return arena.NullIndex, err
	}
	if c.Check(lexer.LBracket) {
		var dims []int
		for c.Match(lexer.LBracket) {
			if c.Check(lexer.RBracket) {
				c.Advance()
				dims = append(dims, arena.NullIndex)
				continue
			}
			size, serr := c.parseExpression()
			if serr != nil {
				return arena.NullIndex, serr
			}
			if _, err := c.Expect(lexer.RBracket, "']'"); err != nil {
				return arena.NullIndex, err
			}
			dims = append(dims, size)
		}
		idx, aerr := c.p.tree.Allocate(arena.KindNewArrayExpression, start, c.Peek(-1).End)
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		if err := c.p.tree.AppendChild(idx, typ); err != nil {
			return arena.NullIndex, err
		}
		for _, d := range dims {
			if d == arena.NullIndex {
				continue
			}
			if err := c.p.tree.AppendChild(idx, d); err != nil {
				return arena.NullIndex, err
			}
		}
		if c.Check(lexer.LBrace) {
			init, ierr := c.parseArrayInitializer()
			if ierr != nil {
				return arena.NullIndex, ierr
			}
			if err := c.p.tree.AppendChild(idx, init); err != nil {
				return arena.NullIndex, err
			}
		}
		return idx, nil
	}

	if c.Check(lexer.LBrace) {
		// `new int[]{...}` without explicit dims already consumed above;
		// this path covers array-typed `new Type[] {...}` literal form.
		init, ierr := c.parseArrayInitializer()
		if ierr != nil {
			return arena.NullIndex, ierr
		}
		idx, aerr := c.p.tree.Allocate(arena.KindNewArrayExpression, start, c.Peek(-1).End)
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		if err := c.p.tree.AppendChild(idx, typ); err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.AppendChild(idx, init); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil
	}

	args, closeTok, err := c.parseArgumentList()
	if err != nil {
		return arena.NullIndex, err
	}
	idx, aerr := c.p.tree.Allocate(arena.KindNewObjectExpression, start, closeTok.End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.AppendChild(idx, typ); err != nil {
		return arena.NullIndex, err
	}
	for _, a := range args {
		if err := c.p.tree.AppendChild(idx, a); err != nil {
			return arena.NullIndex, err
		}
	}
	if c.Check(lexer.LBrace) {
		body, berr := c.parseClassBody()
		if berr != nil {
			return arena.NullIndex, berr
		}
		for _, m := range body {
			if err := c.p.tree.AppendChild(idx, m); err != nil {
				return arena.NullIndex, err
			}
		}
	}
	return idx, nil
}

func (c *Context) parseArrayInitializer() (int, error) {
	start := c.Advance().Start // '{'
	idx, err := c.p.tree.Allocate(arena.KindArrayInitializerExpression, start, start)
	if err != nil {
		return arena.NullIndex, err
	}
	for !c.Check(lexer.RBrace) && !c.atEOF() {
		var elem int
		var eerr error
		if c.Check(lexer.LBrace) {
			elem, eerr = c.parseArrayInitializer()
		} else {
			elem, eerr = c.parseExpression()
		}
		if eerr != nil {
			return arena.NullIndex, eerr
		}
		if err := c.p.tree.AppendChild(idx, elem); err != nil {
			return arena.NullIndex, err
		}
		if !c.Match(lexer.Comma) {
			break
		}
	}
	if _, err := c.Expect(lexer.RBrace, "'}'"); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

// looksLikeLambda performs bounded lookahead for the three lambda forms:
// `x -> ...`, `(x, y) -> ...`, `(Type x) -> ...`.
func (c *Context) looksLikeLambda() bool {
	if c.Check(lexer.Identifier) && c.Peek(1).Kind == lexer.Arrow {
		return true
	}
	if !c.Check(lexer.LParen) {
		return false
	}
	depth := 0
	for i := 0; ; i++ {
		tok := c.Peek(i)
		switch tok.Kind {
		case lexer.LParen:
			depth++
		case lexer.RParen:
			depth--
			if depth == 0 {
				return c.Peek(i + 1).Kind == lexer.Arrow
			}
		case lexer.EOF, lexer.Semicolon, lexer.LBrace:
			return false
		}
		if i > 256 {
			return false
		}
	}
}

func (c *Context) parseLambda() (int, error) {
	start := c.Current().Start
	var params []int
	if c.Check(lexer.LParen) {
		c.Advance()
		for !c.Check(lexer.RParen) && !c.atEOF() {
			p, err := c.parseLambdaParameter()
			if err != nil {
				return arena.NullIndex, err
			}
			params = append(params, p)
			if !c.Match(lexer.Comma) {
				break
			}
		}
		if _, err := c.Expect(lexer.RParen, "')'"); err != nil {
			return arena.NullIndex, err
		}
	} else {
		nameTok := c.Advance()
		p, err := c.p.tree.Allocate(arena.KindParameter, nameTok.Start, nameTok.End)
		if err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.SetParameterAttrs(p, arena.ParameterAttrs{Name: nameTok.Text}); err != nil {
			return arena.NullIndex, err
		}
		params = append(params, p)
	}
	if _, err := c.Expect(lexer.Arrow, "'->'"); err != nil {
		return arena.NullIndex, err
	}

	idx, aerr := c.p.tree.Allocate(arena.KindLambdaExpression, start, start)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	for _, p := range params {
		if err := c.p.tree.AppendChild(idx, p); err != nil {
			return arena.NullIndex, err
		}
	}

	var body int
	var berr error
	if c.Check(lexer.LBrace) {
		body, berr = c.parseBlock()
	} else {
		body, berr = c.parseExpression()
	}
	if berr != nil {
		return arena.NullIndex, berr
	}
	if err := c.p.tree.AppendChild(idx, body); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func (c *Context) parseLambdaParameter() (int, error) {
	start := c.Current().Start
	// Untyped form: bare identifier, possibly the unnamed `_` binding.
	if c.Check(lexer.Identifier) && (c.Peek(1).Kind == lexer.Comma || c.Peek(1).Kind == lexer.RParen) {
		nameTok := c.Advance()
		idx, err := c.p.tree.Allocate(arena.KindParameter, start, nameTok.End)
		if err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.SetParameterAttrs(idx, arena.ParameterAttrs{Name: nameTok.Text, IsUnnamed: nameTok.Text == "_"}); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil
	}
	// Typed form: `final? Type name`.
	isFinal := c.Match(lexer.KwFinal)
	typ, err := c.parseType()
	if err != nil {
		return arena.NullIndex, err
	}
	nameTok, nerr := c.Expect(lexer.Identifier, "lambda parameter name")
	if nerr != nil {
		return arena.NullIndex, nerr
	}
	idx, aerr := c.p.tree.Allocate(arena.KindParameter, start, nameTok.End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.SetParameterAttrs(idx, arena.ParameterAttrs{Name: nameTok.Text, IsFinal: isFinal, IsUnnamed: nameTok.Text == "_"}); err != nil {
		return arena.NullIndex, err
	}
	if err := c.p.tree.AppendChild(idx, typ); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

// startOf returns the start byte offset of an already-allocated node.
func (c *Context) startOf(idx int) int {
	start, _, err := c.p.tree.RangeOf(idx)
	if err != nil {
		return 0
	}
	return start
}
