package parser

import (
	"github.com/oxhq/styler/internal/arena"
	"github.com/oxhq/styler/internal/lexer"
)

// parseBlock parses `{ stmt* }`.
func (c *Context) parseBlock() (int, error) {
	start, err := c.Expect(lexer.LBrace, "'{'")
	if err != nil {
		return arena.NullIndex, err
	}
	idx, aerr := c.p.tree.Allocate(arena.KindBlockStatement, start.Start, start.Start)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	inner := &Context{p: c.p, Phase: PhaseMethodBody}
	for !inner.Check(lexer.RBrace) && !inner.atEOF() {
		if err := inner.pollDeadline("parseBlock"); err != nil {
			return arena.NullIndex, err
		}
		stmt, serr := inner.parseBlockItem()
		if serr != nil {
			c.p.recordError(serr)
			inner.synchronize(statementRecoveryTokens)
			inner.Match(lexer.Semicolon)
			continue
		}
		if stmt != arena.NullIndex {
			if err := c.p.tree.AppendChild(idx, stmt); err != nil {
				return arena.NullIndex, err
			}
		}
	}
	if _, err := inner.Expect(lexer.RBrace, "'}'"); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

// parseConstructorBody parses a constructor's block body under
// PhaseConstructorBody, enforcing the two placement rules an explicit
// `this(...)`/`super(...)` invocation is subject to regardless of how
// the surrounding grammar is gated: at most one ever appears, and below
// versionFlexibleConstructorBody it must be the body's first statement.
func (c *Context) parseConstructorBody() (int, error) {
	start, err := c.Expect(lexer.LBrace, "'{'")
	if err != nil {
		return arena.NullIndex, err
	}
	idx, aerr := c.p.tree.Allocate(arena.KindBlockStatement, start.Start, start.Start)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	inner := &Context{p: c.p, Phase: PhaseConstructorBody, atConstructorBodyStart: true}
	seenDelegation := false
	for !inner.Check(lexer.RBrace) && !inner.atEOF() {
		if err := inner.pollDeadline("parseConstructorBody"); err != nil {
			return arena.NullIndex, err
		}
		if isExplicitConstructorInvocationStart(inner) {
			if verr := inner.checkDelegationPlacement(seenDelegation); verr != nil {
				c.p.recordError(verr)
				inner.synchronize(statementRecoveryTokens)
				inner.Match(lexer.Semicolon)
				inner.atConstructorBodyStart = false
				continue
			}
			seenDelegation = true
		}
		stmt, serr := inner.parseBlockItem()
		inner.atConstructorBodyStart = false
		if serr != nil {
			c.p.recordError(serr)
			inner.synchronize(statementRecoveryTokens)
			inner.Match(lexer.Semicolon)
			continue
		}
		if stmt != arena.NullIndex {
			if err := c.p.tree.AppendChild(idx, stmt); err != nil {
				return arena.NullIndex, err
			}
		}
	}
	if _, err := inner.Expect(lexer.RBrace, "'}'"); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

// checkDelegationPlacement validates an explicit constructor invocation
// the cursor is currently sitting on, returning nil when it's allowed
// here. A second delegation call is never legal, at any version; a
// delegation call past the first statement needs the registry to
// confirm flexibleConstructorBodyStrategy actually applies at the
// configured version.
func (c *Context) checkDelegationPlacement(seenDelegation bool) error {
	if seenDelegation {
		return c.errorf("a constructor may contain at most one explicit constructor invocation")
	}
	if !c.atConstructorBodyStart && c.p.registry.Resolve(c.p.version, PhaseConstructorBody, c) == nil {
		return c.errorf("an explicit constructor invocation must be the first statement in the constructor body")
	}
	return nil
}

// parseBlockItem parses either a local declaration (variable, local class
// or record) or a statement.
func (c *Context) parseBlockItem() (int, error) {
	if c.isLocalVariableStart() {
		return c.parseLocalVariableDeclaration()
	}
	switch c.Current().Kind {
	case lexer.KwClass, lexer.KwInterface, lexer.KwEnum, lexer.KwRecord:
		return c.parseTypeDeclaration()
	default:
		return c.parseStatement()
	}
}

func (c *Context) isLocalVariableStart() bool {
	if c.Check(lexer.KwVar) && c.Peek(1).Kind == lexer.Identifier {
		return true
	}
	if c.Check(lexer.KwFinal) {
		return true
	}
	if primitiveTypeKeywords[c.Current().Kind] {
		return true
	}
	if c.Check(lexer.Identifier) {
		// Disambiguate `Type name ...` from an expression statement
		// starting with a bare identifier by scanning to the next
		// significant punctuation.
		save := c.p.pos
		defer func() { c.p.pos = save }()
		if _, err := c.parseType(); err != nil {
			return false
		}
		return c.Check(lexer.Identifier)
	}
	return false
}

func (c *Context) parseLocalVariableDeclaration() (int, error) {
	start := c.Current().Start
	isFinal := c.Match(lexer.KwFinal)
	typ, err := c.parseType()
	if err != nil {
		return arena.NullIndex, err
	}
	idx, aerr := c.p.tree.Allocate(arena.KindLocalVariableDeclaration, start, start)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.AppendChild(idx, typ); err != nil {
		return arena.NullIndex, err
	}
	_ = isFinal
	for {
		nameTok, nerr := c.Expect(lexer.Identifier, "variable name")
		if nerr != nil {
			return arena.NullIndex, nerr
		}
		declIdx, daerr := c.p.tree.Allocate(arena.KindIdentifierExpression, nameTok.Start, nameTok.End)
		if daerr != nil {
			return arena.NullIndex, daerr
		}
		if err := c.p.tree.SetIdentifierAttrs(declIdx, arena.IdentifierAttrs{Name: nameTok.Text}); err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.AppendChild(idx, declIdx); err != nil {
			return arena.NullIndex, err
		}
		if c.Match(lexer.Eq) {
			var init int
			var ierr error
			if c.Check(lexer.LBrace) {
				init, ierr = c.parseArrayInitializer()
			} else {
				init, ierr = c.parseExpression()
			}
			if ierr != nil {
				return arena.NullIndex, ierr
			}
			if err := c.p.tree.AppendChild(idx, init); err != nil {
				return arena.NullIndex, err
			}
		}
		if !c.Match(lexer.Comma) {
			break
		}
	}
	if _, err := c.Expect(lexer.Semicolon, "';'"); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

// parseStatement dispatches on the leading token.
func (c *Context) parseStatement() (int, error) {
	switch c.Current().Kind {
	case lexer.LBrace:
		return c.parseBlock()
	case lexer.KwIf:
		return c.parseIf()
	case lexer.KwWhile:
		return c.parseWhile()
	case lexer.KwDo:
		return c.parseDoWhile()
	case lexer.KwFor:
		return c.parseFor()
	case lexer.KwSwitch:
		return c.parseSwitchStatement()
	case lexer.KwTry:
		return c.parseTry()
	case lexer.KwReturn:
		return c.parseReturn()
	case lexer.KwThrow:
		return c.parseThrow()
	case lexer.KwBreak:
		return c.parseBreak()
	case lexer.KwContinue:
		return c.parseContinue()
	case lexer.KwSynchronized:
		return c.parseSynchronized()
	case lexer.KwYield:
		return c.parseYield()
	case lexer.Semicolon:
		tok := c.Advance()
		return c.p.tree.Allocate(arena.KindEmptyStatement, tok.Start, tok.End)
	case lexer.Identifier:
		if c.Peek(1).Kind == lexer.Colon {
			return c.parseLabeled()
		}
		return c.parseExpressionStatement()
	default:
		return c.parseExpressionStatement()
	}
}

func (c *Context) parseExpressionStatement() (int, error) {
	start := c.Current().Start
	expr, err := c.parseExpression()
	if err != nil {
		return arena.NullIndex, err
	}
	semi, serr := c.Expect(lexer.Semicolon, "';'")
	if serr != nil {
		return arena.NullIndex, serr
	}
	idx, aerr := c.p.tree.Allocate(arena.KindExpressionStatement, start, semi.End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.AppendChild(idx, expr); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func (c *Context) parseLabeled() (int, error) {
	label := c.Advance()
	c.Advance() // ':'
	stmt, err := c.parseStatement()
	if err != nil {
		return arena.NullIndex, err
	}
	idx, aerr := c.p.tree.Allocate(arena.KindLabeledStatement, label.Start, c.Peek(-1).End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: label.Text}); err != nil {
		return arena.NullIndex, err
	}
	if err := c.p.tree.AppendChild(idx, stmt); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func (c *Context) parseIf() (int, error) {
	start := c.Advance().Start
	if _, err := c.Expect(lexer.LParen, "'('"); err != nil {
		return arena.NullIndex, err
	}
	cond, err := c.parseExpression()
	if err != nil {
		return arena.NullIndex, err
	}
	if _, err := c.Expect(lexer.RParen, "')'"); err != nil {
		return arena.NullIndex, err
	}
	thenStmt, terr := c.parseStatement()
	if terr != nil {
		return arena.NullIndex, terr
	}
	idx, aerr := c.p.tree.Allocate(arena.KindIfStatement, start, c.Peek(-1).End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.AppendChild(idx, cond); err != nil {
		return arena.NullIndex, err
	}
	if err := c.p.tree.AppendChild(idx, thenStmt); err != nil {
		return arena.NullIndex, err
	}
	if c.Match(lexer.KwElse) {
		elseStmt, eerr := c.parseStatement()
		if eerr != nil {
			return arena.NullIndex, eerr
		}
		if err := c.p.tree.AppendChild(idx, elseStmt); err != nil {
			return arena.NullIndex, err
		}
	}
	return idx, nil
}

func (c *Context) parseWhile() (int, error) {
	start := c.Advance().Start
	if _, err := c.Expect(lexer.LParen, "'('"); err != nil {
		return arena.NullIndex, err
	}
	cond, err := c.parseExpression()
	if err != nil {
		return arena.NullIndex, err
	}
	if _, err := c.Expect(lexer.RParen, "')'"); err != nil {
		return arena.NullIndex, err
	}
	body, berr := c.parseStatement()
	if berr != nil {
		return arena.NullIndex, berr
	}
	idx, aerr := c.p.tree.Allocate(arena.KindWhileStatement, start, c.Peek(-1).End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.AppendChild(idx, cond); err != nil {
		return arena.NullIndex, err
	}
	if err := c.p.tree.AppendChild(idx, body); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func (c *Context) parseDoWhile() (int, error) {
	start := c.Advance().Start
	body, err := c.parseStatement()
	if err != nil {
		return arena.NullIndex, err
	}
	if _, err := c.Expect(lexer.KwWhile, "'while'"); err != nil {
		return arena.NullIndex, err
	}
	if _, err := c.Expect(lexer.LParen, "'('"); err != nil {
		return arena.NullIndex, err
	}
	cond, cerr := c.parseExpression()
	if cerr != nil {
		return arena.NullIndex, cerr
	}
	if _, err := c.Expect(lexer.RParen, "')'"); err != nil {
		return arena.NullIndex, err
	}
	semi, serr := c.Expect(lexer.Semicolon, "';'")
	if serr != nil {
		return arena.NullIndex, serr
	}
	idx, aerr := c.p.tree.Allocate(arena.KindDoWhileStatement, start, semi.End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.AppendChild(idx, body); err != nil {
		return arena.NullIndex, err
	}
	if err := c.p.tree.AppendChild(idx, cond); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

// parseFor dispatches between the classic three-clause for and the
// enhanced for-each, which share a leading `for (`.
func (c *Context) parseFor() (int, error) {
	start := c.Advance().Start
	if _, err := c.Expect(lexer.LParen, "'('"); err != nil {
		return arena.NullIndex, err
	}

	if c.looksLikeEnhancedFor() {
		isFinal := c.Match(lexer.KwFinal)
		_ = isFinal
		typ, terr := c.parseType()
		if terr != nil {
			return arena.NullIndex, terr
		}
		nameTok, nerr := c.Expect(lexer.Identifier, "loop variable name")
		if nerr != nil {
			return arena.NullIndex, nerr
		}
		if _, err := c.Expect(lexer.Colon, "':'"); err != nil {
			return arena.NullIndex, err
		}
		iterable, ierr := c.parseExpression()
		if ierr != nil {
			return arena.NullIndex, ierr
		}
		if _, err := c.Expect(lexer.RParen, "')'"); err != nil {
			return arena.NullIndex, err
		}
		body, berr := c.parseStatement()
		if berr != nil {
			return arena.NullIndex, berr
		}
		idx, aerr := c.p.tree.Allocate(arena.KindEnhancedForStatement, start, c.Peek(-1).End)
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		if err := c.p.tree.AppendChild(idx, typ); err != nil {
			return arena.NullIndex, err
		}
		nameIdx, naerr := c.p.tree.Allocate(arena.KindIdentifierExpression, nameTok.Start, nameTok.End)
		if naerr != nil {
			return arena.NullIndex, naerr
		}
		if err := c.p.tree.SetIdentifierAttrs(nameIdx, arena.IdentifierAttrs{Name: nameTok.Text}); err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.AppendChild(idx, nameIdx); err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.AppendChild(idx, iterable); err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.AppendChild(idx, body); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil
	}

	idx, aerr := c.p.tree.Allocate(arena.KindForStatement, start, start)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if !c.Check(lexer.Semicolon) {
		var init int
		var ierr error
		if c.isLocalVariableStart() {
			init, ierr = c.parseLocalVariableDeclaration()
		} else {
			init, ierr = c.parseExpressionStatement()
		}
		if ierr != nil {
			return arena.NullIndex, ierr
		}
		if err := c.p.tree.AppendChild(idx, init); err != nil {
			return arena.NullIndex, err
		}
	} else {
		c.Advance()
	}
	if !c.Check(lexer.Semicolon) {
		cond, cerr := c.parseExpression()
		if cerr != nil {
			return arena.NullIndex, cerr
		}
		if err := c.p.tree.AppendChild(idx, cond); err != nil {
			return arena.NullIndex, err
		}
	}
	if _, err := c.Expect(lexer.Semicolon, "';'"); err != nil {
		return arena.NullIndex, err
	}
	for !c.Check(lexer.RParen) {
		update, uerr := c.parseExpression()
		if uerr != nil {
			return arena.NullIndex, uerr
		}
		if err := c.p.tree.AppendChild(idx, update); err != nil {
			return arena.NullIndex, err
		}
		if !c.Match(lexer.Comma) {
			break
		}
	}
	if _, err := c.Expect(lexer.RParen, "')'"); err != nil {
		return arena.NullIndex, err
	}
	body, berr := c.parseStatement()
	if berr != nil {
		return arena.NullIndex, berr
	}
	if err := c.p.tree.AppendChild(idx, body); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func (c *Context) looksLikeEnhancedFor() bool {
	save := c.p.pos
	defer func() { c.p.pos = save }()
	c.Match(lexer.KwFinal)
	if _, err := c.parseType(); err != nil {
		return false
	}
	if !c.Check(lexer.Identifier) {
		return false
	}
	c.Advance()
	return c.Check(lexer.Colon)
}

func (c *Context) parseSwitchStatement() (int, error) {
	cases, start, end, err := c.parseSwitchCommon()
	if err != nil {
		return arena.NullIndex, err
	}
	idx, aerr := c.p.tree.Allocate(arena.KindSwitchStatement, start, end)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	for _, ch := range cases {
		if err := c.p.tree.AppendChild(idx, ch); err != nil {
			return arena.NullIndex, err
		}
	}
	return idx, nil
}

func (c *Context) parseSwitchExpression() (int, error) {
	cases, start, end, err := c.parseSwitchCommon()
	if err != nil {
		return arena.NullIndex, err
	}
	idx, aerr := c.p.tree.Allocate(arena.KindSwitchExpression, start, end)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	for _, ch := range cases {
		if err := c.p.tree.AppendChild(idx, ch); err != nil {
			return arena.NullIndex, err
		}
	}
	return idx, nil
}

// parseSwitchCommon parses the shared `switch (expr) { rules-or-labels }`
// shape, supporting both classic colon-labeled groups and arrow rules.
func (c *Context) parseSwitchCommon() ([]int, int, int, error) {
	start := c.Advance().Start // 'switch'
	if _, err := c.Expect(lexer.LParen, "'('"); err != nil {
		return nil, 0, 0, err
	}
	selector, serr := c.parseExpression()
	if serr != nil {
		return nil, 0, 0, serr
	}
	if _, err := c.Expect(lexer.RParen, "')'"); err != nil {
		return nil, 0, 0, err
	}
	selIdx, saerr := c.p.tree.Allocate(arena.KindExpressionStatement, c.startOf(selector), c.startOf(selector))
	_ = selIdx
	_ = saerr
	if _, err := c.Expect(lexer.LBrace, "'{'"); err != nil {
		return nil, 0, 0, err
	}
	groups := []int{selector}
	for !c.Check(lexer.RBrace) && !c.atEOF() {
		if err := c.pollDeadline("parseSwitchCommon"); err != nil {
			return nil, 0, 0, err
		}
		group, gerr := c.parseSwitchGroup()
		if gerr != nil {
			return nil, 0, 0, gerr
		}
		groups = append(groups, group)
	}
	closeTok, cerr := c.Expect(lexer.RBrace, "'}'")
	if cerr != nil {
		return nil, 0, 0, cerr
	}
	return groups, start, closeTok.End, nil
}

func (c *Context) parseSwitchGroup() (int, error) {
	start := c.Current().Start
	label, err := c.parseSwitchLabel()
	if err != nil {
		return arena.NullIndex, err
	}
	if c.Match(lexer.Arrow) {
		var body int
		var berr error
		if c.Check(lexer.LBrace) {
			body, berr = c.parseBlock()
		} else if c.Check(lexer.KwThrow) {
			body, berr = c.parseThrow()
		} else {
			var expr int
			expr, berr = c.parseExpression()
			if berr == nil {
				if _, serr := c.Expect(lexer.Semicolon, "';'"); serr != nil {
					berr = serr
				}
			}
			body = expr
		}
		if berr != nil {
			return arena.NullIndex, berr
		}
		idx, aerr := c.p.tree.Allocate(arena.KindSwitchRule, start, c.Peek(-1).End)
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		if err := c.p.tree.AppendChild(idx, label); err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.AppendChild(idx, body); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil
	}

	if _, err := c.Expect(lexer.Colon, "':'"); err != nil {
		return arena.NullIndex, err
	}
	idx, aerr := c.p.tree.Allocate(arena.KindSwitchRule, start, start)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.AppendChild(idx, label); err != nil {
		return arena.NullIndex, err
	}
	for !c.CheckAny(lexer.KwCase, lexer.KwDefault, lexer.RBrace) && !c.atEOF() {
		stmt, serr := c.parseBlockItem()
		if serr != nil {
			return arena.NullIndex, serr
		}
		if err := c.p.tree.AppendChild(idx, stmt); err != nil {
			return arena.NullIndex, err
		}
	}
	return idx, nil
}

// parseSwitchLabel parses a `case pattern, pattern when guard` or
// `default` label, including pattern-matching switch labels.
func (c *Context) parseSwitchLabel() (int, error) {
	start := c.Current().Start
	if c.Match(lexer.KwDefault) {
		return c.p.tree.Allocate(arena.KindSwitchLabel, start, c.Peek(-1).End)
	}
	if _, err := c.Expect(lexer.KwCase, "'case'"); err != nil {
		return arena.NullIndex, err
	}
	idx, aerr := c.p.tree.Allocate(arena.KindSwitchLabel, start, start)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	for {
		var item int
		var ierr error
		if c.looksLikeTypePatternLabel() {
			item, ierr = c.parseTypePatternLabel()
		} else {
			item, ierr = c.parseExpression()
		}
		if ierr != nil {
			return arena.NullIndex, ierr
		}
		if err := c.p.tree.AppendChild(idx, item); err != nil {
			return arena.NullIndex, err
		}
		if !c.Match(lexer.Comma) {
			break
		}
	}
	return idx, nil
}

// looksLikeTypePatternLabel distinguishes `case Foo f` / `case Point(int x, int y)`
// from a plain constant-expression case label.
func (c *Context) looksLikeTypePatternLabel() bool {
	if !c.Check(lexer.Identifier) {
		return false
	}
	save := c.p.pos
	defer func() { c.p.pos = save }()
	if _, err := c.parseType(); err != nil {
		return false
	}
	return c.Check(lexer.Identifier) || c.Check(lexer.LParen)
}

func (c *Context) parseTypePatternLabel() (int, error) {
	typ, err := c.parseType()
	if err != nil {
		return arena.NullIndex, err
	}
	if c.Check(lexer.LParen) {
		pat, perr := c.parseRecordPattern(typ)
		if perr != nil {
			return arena.NullIndex, perr
		}
		return c.finishGuardedPattern(pat)
	}
	nameTok, nerr := c.Expect(lexer.Identifier, "pattern binding name")
	if nerr != nil {
		return arena.NullIndex, nerr
	}
	pat, paerr := c.p.tree.Allocate(arena.KindTypePattern, c.startOf(typ), nameTok.End)
	if paerr != nil {
		return arena.NullIndex, paerr
	}
	if err := c.p.tree.SetIdentifierAttrs(pat, arena.IdentifierAttrs{Name: nameTok.Text}); err != nil {
		return arena.NullIndex, err
	}
	if err := c.p.tree.AppendChild(pat, typ); err != nil {
		return arena.NullIndex, err
	}
	return c.finishGuardedPattern(pat)
}

func (c *Context) finishGuardedPattern(pat int) (int, error) {
	if !c.Check(lexer.KwWhen) {
		return pat, nil
	}
	c.Advance()
	guard, gerr := c.parseExpression()
	if gerr != nil {
		return arena.NullIndex, gerr
	}
	idx, aerr := c.p.tree.Allocate(arena.KindGuardedPattern, c.startOf(pat), c.Peek(-1).End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.AppendChild(idx, pat); err != nil {
		return arena.NullIndex, err
	}
	if err := c.p.tree.AppendChild(idx, guard); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func (c *Context) parseTry() (int, error) {
	start := c.Advance().Start
	idx, aerr := c.p.tree.Allocate(arena.KindTryStatement, start, start)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if c.Check(lexer.LParen) {
		res, rerr := c.parseResourceSpecification()
		if rerr != nil {
			return arena.NullIndex, rerr
		}
		if err := c.p.tree.AppendChild(idx, res); err != nil {
			return arena.NullIndex, err
		}
	}
	body, berr := c.parseBlock()
	if berr != nil {
		return arena.NullIndex, berr
	}
	if err := c.p.tree.AppendChild(idx, body); err != nil {
		return arena.NullIndex, err
	}
	for c.Check(lexer.KwCatch) {
		catchClause, cerr := c.parseCatch()
		if cerr != nil {
			return arena.NullIndex, cerr
		}
		if err := c.p.tree.AppendChild(idx, catchClause); err != nil {
			return arena.NullIndex, err
		}
	}
	if c.Match(lexer.KwFinally) {
		finallyBlock, ferr := c.parseBlock()
		if ferr != nil {
			return arena.NullIndex, ferr
		}
		if err := c.p.tree.AppendChild(idx, finallyBlock); err != nil {
			return arena.NullIndex, err
		}
	}
	return idx, nil
}

func (c *Context) parseResourceSpecification() (int, error) {
	start := c.Advance().Start // '('
	idx, err := c.p.tree.Allocate(arena.KindResourceSpecification, start, start)
	if err != nil {
		return arena.NullIndex, err
	}
	for !c.Check(lexer.RParen) && !c.atEOF() {
		var res int
		var rerr error
		if c.isLocalVariableStart() {
			resStart := c.Current().Start
			isFinal := c.Match(lexer.KwFinal)
			_ = isFinal
			typ, terr := c.parseType()
			if terr != nil {
				return arena.NullIndex, terr
			}
			nameTok, nerr := c.Expect(lexer.Identifier, "resource name")
			if nerr != nil {
				return arena.NullIndex, nerr
			}
			if _, err := c.Expect(lexer.Eq, "'='"); err != nil {
				return arena.NullIndex, err
			}
			init, ierr := c.parseExpression()
			if ierr != nil {
				return arena.NullIndex, ierr
			}
			decl, daerr := c.p.tree.Allocate(arena.KindLocalVariableDeclaration, resStart, c.Peek(-1).End)
			if daerr != nil {
				return arena.NullIndex, daerr
			}
			if err := c.p.tree.AppendChild(decl, typ); err != nil {
				return arena.NullIndex, err
			}
			nameIdx, naerr := c.p.tree.Allocate(arena.KindIdentifierExpression, nameTok.Start, nameTok.End)
			if naerr != nil {
				return arena.NullIndex, naerr
			}
			if err := c.p.tree.SetIdentifierAttrs(nameIdx, arena.IdentifierAttrs{Name: nameTok.Text}); err != nil {
				return arena.NullIndex, err
			}
			if err := c.p.tree.AppendChild(decl, nameIdx); err != nil {
				return arena.NullIndex, err
			}
			if err := c.p.tree.AppendChild(decl, init); err != nil {
				return arena.NullIndex, err
			}
			res = decl
		} else {
			// Effectively-final variable reference resource.
			res, rerr = c.parseExpression()
			if rerr != nil {
				return arena.NullIndex, rerr
			}
		}
		if err := c.p.tree.AppendChild(idx, res); err != nil {
			return arena.NullIndex, err
		}
		if !c.Match(lexer.Semicolon) {
			break
		}
	}
	if _, err := c.Expect(lexer.RParen, "')'"); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func (c *Context) parseCatch() (int, error) {
	start := c.Advance().Start // 'catch'
	if _, err := c.Expect(lexer.LParen, "'('"); err != nil {
		return arena.NullIndex, err
	}
	c.Match(lexer.KwFinal)
	typ, err := c.parseType()
	if err != nil {
		return arena.NullIndex, err
	}
	for c.Match(lexer.Pipe) {
		alt, aerr := c.parseType()
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		union, uerr := c.p.tree.Allocate(arena.KindUnionType, c.startOf(typ), c.startOf(alt))
		if uerr != nil {
			return arena.NullIndex, uerr
		}
		if err := c.p.tree.AppendChild(union, typ); err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.AppendChild(union, alt); err != nil {
			return arena.NullIndex, err
		}
		typ = union
	}
	nameTok, nerr := c.Expect(lexer.Identifier, "exception parameter name")
	if nerr != nil {
		return arena.NullIndex, nerr
	}
	if _, err := c.Expect(lexer.RParen, "')'"); err != nil {
		return arena.NullIndex, err
	}
	param, paerr := c.p.tree.Allocate(arena.KindParameter, c.startOf(typ), nameTok.End)
	if paerr != nil {
		return arena.NullIndex, paerr
	}
	if err := c.p.tree.SetParameterAttrs(param, arena.ParameterAttrs{Name: nameTok.Text}); err != nil {
		return arena.NullIndex, err
	}
	if err := c.p.tree.AppendChild(param, typ); err != nil {
		return arena.NullIndex, err
	}
	body, berr := c.parseBlock()
	if berr != nil {
		return arena.NullIndex, berr
	}
	idx, iaerr := c.p.tree.Allocate(arena.KindCatchClause, start, c.Peek(-1).End)
	if iaerr != nil {
		return arena.NullIndex, iaerr
	}
	if err := c.p.tree.AppendChild(idx, param); err != nil {
		return arena.NullIndex, err
	}
	if err := c.p.tree.AppendChild(idx, body); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func (c *Context) parseReturn() (int, error) {
	start := c.Advance().Start
	idx, aerr := c.p.tree.Allocate(arena.KindReturnStatement, start, start)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if !c.Check(lexer.Semicolon) {
		val, verr := c.parseExpression()
		if verr != nil {
			return arena.NullIndex, verr
		}
		if err := c.p.tree.AppendChild(idx, val); err != nil {
			return arena.NullIndex, err
		}
	}
	if _, err := c.Expect(lexer.Semicolon, "';'"); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func (c *Context) parseThrow() (int, error) {
	start := c.Advance().Start
	val, err := c.parseExpression()
	if err != nil {
		return arena.NullIndex, err
	}
	semi, serr := c.Expect(lexer.Semicolon, "';'")
	if serr != nil {
		return arena.NullIndex, serr
	}
	idx, aerr := c.p.tree.Allocate(arena.KindThrowStatement, start, semi.End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.AppendChild(idx, val); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func (c *Context) parseBreak() (int, error) {
	start := c.Advance().Start
	idx, aerr := c.p.tree.Allocate(arena.KindBreakStatement, start, start)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if c.Check(lexer.Identifier) {
		label := c.Advance()
		if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: label.Text}); err != nil {
			return arena.NullIndex, err
		}
	}
	if _, err := c.Expect(lexer.Semicolon, "';'"); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func (c *Context) parseContinue() (int, error) {
	start := c.Advance().Start
	idx, aerr := c.p.tree.Allocate(arena.KindContinueStatement, start, start)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if c.Check(lexer.Identifier) {
		label := c.Advance()
		if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: label.Text}); err != nil {
			return arena.NullIndex, err
		}
	}
	if _, err := c.Expect(lexer.Semicolon, "';'"); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func (c *Context) parseSynchronized() (int, error) {
	start := c.Advance().Start
	if _, err := c.Expect(lexer.LParen, "'('"); err != nil {
		return arena.NullIndex, err
	}
	monitor, err := c.parseExpression()
	if err != nil {
		return arena.NullIndex, err
	}
	if _, err := c.Expect(lexer.RParen, "')'"); err != nil {
		return arena.NullIndex, err
	}
	body, berr := c.parseBlock()
	if berr != nil {
		return arena.NullIndex, berr
	}
	idx, aerr := c.p.tree.Allocate(arena.KindSynchronizedStatement, start, c.Peek(-1).End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.AppendChild(idx, monitor); err != nil {
		return arena.NullIndex, err
	}
	if err := c.p.tree.AppendChild(idx, body); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func (c *Context) parseYield() (int, error) {
	start := c.Advance().Start
	val, err := c.parseExpression()
	if err != nil {
		return arena.NullIndex, err
	}
	semi, serr := c.Expect(lexer.Semicolon, "';'")
	if serr != nil {
		return arena.NullIndex, serr
	}
	idx, aerr := c.p.tree.Allocate(arena.KindYieldStatement, start, semi.End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.AppendChild(idx, val); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}
