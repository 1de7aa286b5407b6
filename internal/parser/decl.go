package parser

import (
	"github.com/oxhq/styler/internal/arena"
	"github.com/oxhq/styler/internal/diag"
	"github.com/oxhq/styler/internal/lexer"
)

var modifierKeywords = map[lexer.Kind]bool{
	lexer.KwPublic: true, lexer.KwPrivate: true, lexer.KwProtected: true,
	lexer.KwStatic: true, lexer.KwFinal: true, lexer.KwAbstract: true,
	lexer.KwNative: true, lexer.KwSynchronized: true, lexer.KwTransient: true,
	lexer.KwVolatile: true, lexer.KwStrictfp: true, lexer.KwSealed: true,
	lexer.KwNonSealed: true, lexer.KwDefault: true,
}

// parseTopLevelItem parses one compilation-unit member: the package
// declaration, a regular or static import, a module import, or a
// top-level type declaration.
func (c *Context) parseTopLevelItem() (int, error) {
	if err := c.pollDeadline("parseTopLevelItem"); err != nil {
		return arena.NullIndex, err
	}
	switch c.Current().Kind {
	case lexer.At:
		if c.Peek(1).Kind == lexer.KwInterface {
			return c.parseTypeDeclaration()
		}
		return c.parseAnnotatedTopLevelItem()
	case lexer.KwPackage:
		return c.parsePackageDeclaration()
	case lexer.KwImport:
		return c.parseImportDeclaration()
	case lexer.Semicolon:
		c.Advance()
		return arena.NullIndex, nil
	default:
		if strat := c.p.registry.Resolve(c.p.version, PhaseTopLevel, c); strat != nil {
			return strat.ParseConstruct(c)
		}
		return c.parseTypeDeclaration()
	}
}

func (c *Context) parseAnnotatedTopLevelItem() (int, error) {
	// Leading annotations belong to the declaration that follows; collect
	// and attach them once the declaration node exists.
	var annotations []int
	for c.Check(lexer.At) && c.Peek(1).Kind != lexer.KwInterface {
		ann, err := c.parseAnnotation()
		if err != nil {
			return arena.NullIndex, err
		}
		annotations = append(annotations, ann)
	}
	idx, err := c.parseTypeDeclaration()
	if err != nil {
		return arena.NullIndex, err
	}
	for _, ann := range annotations {
		if err := c.p.tree.AppendChild(idx, ann); err != nil {
			return arena.NullIndex, err
		}
	}
	return idx, nil
}

func (c *Context) parseAnnotation() (int, error) {
	start := c.Advance().Start // '@'
	nameTok, err := c.Expect(lexer.Identifier, "annotation name")
	if err != nil {
		return arena.NullIndex, err
	}
	for c.Match(lexer.Dot) {
		if _, err := c.Expect(lexer.Identifier, "annotation name segment"); err != nil {
			return arena.NullIndex, err
		}
	}
	idx, aerr := c.p.tree.Allocate(arena.KindAnnotation, start, nameTok.End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: nameTok.Text}); err != nil {
		return arena.NullIndex, err
	}
	if c.Check(lexer.LParen) {
		c.Advance()
		for !c.Check(lexer.RParen) && !c.atEOF() {
			arg, argErr := c.parseAnnotationArgument()
			if argErr != nil {
				return arena.NullIndex, argErr
			}
			if err := c.p.tree.AppendChild(idx, arg); err != nil {
				return arena.NullIndex, err
			}
			if !c.Match(lexer.Comma) {
				break
			}
		}
		if _, err := c.Expect(lexer.RParen, "')'"); err != nil {
			return arena.NullIndex, err
		}
	}
	return idx, nil
}

func (c *Context) parseAnnotationArgument() (int, error) {
	start := c.Current().Start
	name := ""
	if c.Check(lexer.Identifier) && c.Peek(1).Kind == lexer.Eq {
		name = c.Advance().Text
		c.Advance() // '='
	}
	var value int
	var err error
	if c.Check(lexer.LBrace) {
		value, err = c.parseArrayInitializer()
	} else if c.Check(lexer.At) {
		value, err = c.parseAnnotation()
	} else {
		value, err = c.parseExpression()
	}
	if err != nil {
		return arena.NullIndex, err
	}
	idx, aerr := c.p.tree.Allocate(arena.KindAnnotationArgument, start, c.Peek(-1).End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if name != "" {
		if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: name}); err != nil {
			return arena.NullIndex, err
		}
	}
	if err := c.p.tree.AppendChild(idx, value); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func (c *Context) parsePackageDeclaration() (int, error) {
	start := c.Advance().Start
	name, err := c.parseQualifiedNameText()
	if err != nil {
		return arena.NullIndex, err
	}
	semi, serr := c.Expect(lexer.Semicolon, "';'")
	if serr != nil {
		return arena.NullIndex, serr
	}
	idx, aerr := c.p.tree.Allocate(arena.KindPackageDeclaration, start, semi.End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: name}); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

// parseImportDeclaration parses a regular, static, or module import
// (`import module M;`). ExtractImports relies on the parser preserving
// source order: regular and static imports each retain their own
// relative order.
func (c *Context) parseImportDeclaration() (int, error) {
	start := c.Advance().Start // 'import'
	if c.Check(lexer.KwModule) {
		c.Advance()
		name, nerr := c.parseQualifiedNameText()
		if nerr != nil {
			return arena.NullIndex, nerr
		}
		semi, serr := c.Expect(lexer.Semicolon, "';'")
		if serr != nil {
			return arena.NullIndex, serr
		}
		idx, aerr := c.p.tree.Allocate(arena.KindModuleImportDeclaration, start, semi.End)
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		if err := c.p.tree.SetModuleImportAttrs(idx, arena.ModuleImportAttrs{ModuleName: name}); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil
	}

	isStatic := c.Match(lexer.KwStatic)
	name, err := c.parseQualifiedNameText()
	if err != nil {
		return arena.NullIndex, err
	}
	wildcard := false
	if c.Check(lexer.Dot) && c.Peek(1).Kind == lexer.Star {
		c.Advance()
		c.Advance()
		wildcard = true
		name += ".*"
	}
	semi, serr := c.Expect(lexer.Semicolon, "';'")
	if serr != nil {
		return arena.NullIndex, serr
	}
	idx, aerr := c.p.tree.Allocate(arena.KindImportDeclaration, start, semi.End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: name}); err != nil {
		return arena.NullIndex, err
	}
	if err := c.p.tree.SetModifierAttrs(idx, arena.ModifierAttrs{Text: staticWildcardTag(isStatic, wildcard)}); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func staticWildcardTag(isStatic, wildcard bool) string {
	switch {
	case isStatic && wildcard:
		return "static wildcard"
	case isStatic:
		return "static"
	case wildcard:
		return "wildcard"
	default:
		return ""
	}
}

func (c *Context) parseQualifiedNameText() (string, error) {
	tok, err := c.Expect(lexer.Identifier, "identifier")
	if err != nil {
		return "", err
	}
	name := tok.Text
	for c.Check(lexer.Dot) && c.Peek(1).Kind == lexer.Identifier {
		c.Advance()
		seg := c.Advance()
		name += "." + seg.Text
	}
	return name, nil
}

// parseTypeDeclaration parses a class, interface, enum, record, or
// annotation-type declaration, including modifiers, type parameters,
// extends/implements/permits clauses.
func (c *Context) parseTypeDeclaration() (int, error) {
	start := c.Current().Start
	modifiers, err := c.parseModifiers()
	if err != nil {
		return arena.NullIndex, err
	}

	var kind arena.NodeKind
	switch c.Current().Kind {
	case lexer.KwClass:
		kind = arena.KindClassDeclaration
	case lexer.KwInterface:
		kind = arena.KindInterfaceDeclaration
	case lexer.KwEnum:
		kind = arena.KindEnumDeclaration
	case lexer.KwRecord:
		if c.p.registry.Resolve(c.p.version, PhaseTypeBody, c) == nil || c.Peek(1).Kind != lexer.Identifier {
			tok := c.Current()
			return arena.NullIndex, diag.VersionFault{
				ParseError:        c.p.parseErrorAt(tok.Start, "record declarations require a newer language version"),
				RequiredVersion:   versionRecords,
				ConfiguredVersion: c.p.version,
			}
		}
		kind = arena.KindRecordDeclaration
	case lexer.At:
		c.Advance() // '@' of "@interface"
		kind = arena.KindAnnotationTypeDeclaration
	default:
		tok := c.Current()
		return arena.NullIndex, c.p.parseErrorAt(tok.Start, "expected a type declaration, found "+tok.Kind.String())
	}
	c.Advance() // the keyword itself ('class'/'interface'/'enum'/'record'/'interface' after '@')

	nameTok, nerr := c.Expect(lexer.Identifier, "type name")
	if nerr != nil {
		return arena.NullIndex, nerr
	}

	typeParams, tperr := c.parseTypeParameters()
	if tperr != nil {
		return arena.NullIndex, tperr
	}

	idx, aerr := c.p.tree.Allocate(kind, start, start)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	isSealed, isNonSealed := false, false
	for _, m := range modifiers {
		text, _ := c.p.tree.ModifierAttrsOf(m)
		switch text.Text {
		case "sealed":
			isSealed = true
		case "non-sealed":
			isNonSealed = true
		}
		if err := c.p.tree.AppendChild(idx, m); err != nil {
			return arena.NullIndex, err
		}
	}
	if err := c.p.tree.SetTypeDeclAttrs(idx, arena.TypeDeclAttrs{Name: nameTok.Text, IsSealed: isSealed, IsNonSealed: isNonSealed}); err != nil {
		return arena.NullIndex, err
	}
	for _, tp := range typeParams {
		if err := c.p.tree.AppendChild(idx, tp); err != nil {
			return arena.NullIndex, err
		}
	}

	var recordComponents []int
	if kind == arena.KindRecordDeclaration {
		recordComponents, err = c.parseRecordComponents()
		if err != nil {
			return arena.NullIndex, err
		}
	}

	if c.Match(lexer.KwExtends) {
		super, serr := c.parseType()
		if serr != nil {
			return arena.NullIndex, serr
		}
		if err := c.p.tree.AppendChild(idx, super); err != nil {
			return arena.NullIndex, err
		}
		for c.Match(lexer.Comma) { // interface extends list
			extra, eerr := c.parseType()
			if eerr != nil {
				return arena.NullIndex, eerr
			}
			if err := c.p.tree.AppendChild(idx, extra); err != nil {
				return arena.NullIndex, err
			}
		}
	}
	if c.Match(lexer.KwImplements) {
		for {
			impl, ierr := c.parseType()
			if ierr != nil {
				return arena.NullIndex, ierr
			}
			if err := c.p.tree.AppendChild(idx, impl); err != nil {
				return arena.NullIndex, err
			}
			if !c.Match(lexer.Comma) {
				break
			}
		}
	}
	if c.Check(lexer.KwPermits) {
		permits, perr := c.parsePermitsClause()
		if perr != nil {
			return arena.NullIndex, perr
		}
		if err := c.p.tree.AppendChild(idx, permits); err != nil {
			return arena.NullIndex, err
		}
	}

	for _, rc := range recordComponents {
		if err := c.p.tree.AppendChild(idx, rc); err != nil {
			return arena.NullIndex, err
		}
	}

	var members []int
	if kind == arena.KindEnumDeclaration {
		members, err = c.parseEnumBody()
	} else {
		members, err = c.parseClassBody()
	}
	if err != nil {
		return arena.NullIndex, err
	}
	for _, m := range members {
		if err := c.p.tree.AppendChild(idx, m); err != nil {
			return arena.NullIndex, err
		}
	}
	return idx, nil
}

func (c *Context) parsePermitsClause() (int, error) {
	start := c.Advance().Start
	idx, err := c.p.tree.Allocate(arena.KindPermitsClause, start, start)
	if err != nil {
		return arena.NullIndex, err
	}
	for {
		t, terr := c.parseType()
		if terr != nil {
			return arena.NullIndex, terr
		}
		if err := c.p.tree.AppendChild(idx, t); err != nil {
			return arena.NullIndex, err
		}
		if !c.Match(lexer.Comma) {
			break
		}
	}
	return idx, nil
}

func (c *Context) parseRecordComponents() ([]int, error) {
	if _, err := c.Expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	var components []int
	for !c.Check(lexer.RParen) && !c.atEOF() {
		start := c.Current().Start
		typ, err := c.parseType()
		if err != nil {
			return nil, err
		}
		nameTok, nerr := c.Expect(lexer.Identifier, "record component name")
		if nerr != nil {
			return nil, nerr
		}
		idx, aerr := c.p.tree.Allocate(arena.KindRecordComponent, start, nameTok.End)
		if aerr != nil {
			return nil, aerr
		}
		if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: nameTok.Text}); err != nil {
			return nil, err
		}
		if err := c.p.tree.AppendChild(idx, typ); err != nil {
			return nil, err
		}
		components = append(components, idx)
		if !c.Match(lexer.Comma) {
			break
		}
	}
	if _, err := c.Expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	return components, nil
}

func (c *Context) parseModifiers() ([]int, error) {
	var mods []int
	for {
		if c.Check(lexer.At) && c.Peek(1).Kind != lexer.KwInterface {
			ann, err := c.parseAnnotation()
			if err != nil {
				return nil, err
			}
			mods = append(mods, ann)
			continue
		}
		if c.Check(lexer.KwNonSealed) && c.p.registry.Resolve(c.p.version, PhaseTypeBody, c) != nil {
			tok := c.Advance()
			idx, err := c.p.tree.Allocate(arena.KindModifier, tok.Start, tok.End)
			if err != nil {
				return nil, err
			}
			if err := c.p.tree.SetModifierAttrs(idx, arena.ModifierAttrs{Text: "non-sealed"}); err != nil {
				return nil, err
			}
			mods = append(mods, idx)
			continue
		}
		if c.Check(lexer.KwSealed) && c.p.registry.Resolve(c.p.version, PhaseTypeBody, c) == nil {
			break // pre-17: `sealed` is a plain identifier, not a modifier
		}
		if modifierKeywords[c.Current().Kind] || c.Check(lexer.KwSealed) {
			tok := c.Advance()
			idx, err := c.p.tree.Allocate(arena.KindModifier, tok.Start, tok.End)
			if err != nil {
				return nil, err
			}
			if err := c.p.tree.SetModifierAttrs(idx, arena.ModifierAttrs{Text: tok.Kind.String()}); err != nil {
				return nil, err
			}
			mods = append(mods, idx)
			continue
		}
		break
	}
	return mods, nil
}

// parseClassBody parses `{ member* }` for classes, interfaces, records,
// and annotation types, plus anonymous-class bodies.
func (c *Context) parseClassBody() ([]int, error) {
	if _, err := c.Expect(lexer.LBrace, "'{'"); err != nil {
		return nil, err
	}
	var members []int
	for !c.Check(lexer.RBrace) && !c.atEOF() {
		if err := c.pollDeadline("parseClassBody"); err != nil {
			return nil, err
		}
		if c.Match(lexer.Semicolon) {
			continue
		}
		m, err := c.parseMember()
		if err != nil {
			c.p.recordError(err)
			c.synchronize(memberRecoveryTokens)
			continue
		}
		if m != arena.NullIndex {
			members = append(members, m)
		}
	}
	if _, err := c.Expect(lexer.RBrace, "'}'"); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *Context) parseEnumBody() ([]int, error) {
	if _, err := c.Expect(lexer.LBrace, "'{'"); err != nil {
		return nil, err
	}
	var members []int
	for c.Check(lexer.Identifier) || c.Check(lexer.At) {
		constant, err := c.parseEnumConstant()
		if err != nil {
			return nil, err
		}
		members = append(members, constant)
		if !c.Match(lexer.Comma) {
			break
		}
	}
	if c.Match(lexer.Semicolon) {
		for !c.Check(lexer.RBrace) && !c.atEOF() {
			if c.Match(lexer.Semicolon) {
				continue
			}
			m, err := c.parseMember()
			if err != nil {
				c.p.recordError(err)
				c.synchronize(memberRecoveryTokens)
				continue
			}
			if m != arena.NullIndex {
				members = append(members, m)
			}
		}
	}
	if _, err := c.Expect(lexer.RBrace, "'}'"); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *Context) parseEnumConstant() (int, error) {
	start := c.Current().Start
	var annotations []int
	for c.Check(lexer.At) {
		ann, err := c.parseAnnotation()
		if err != nil {
			return arena.NullIndex, err
		}
		annotations = append(annotations, ann)
	}
	nameTok, err := c.Expect(lexer.Identifier, "enum constant name")
	if err != nil {
		return arena.NullIndex, err
	}
	idx, aerr := c.p.tree.Allocate(arena.KindEnumConstant, start, nameTok.End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: nameTok.Text}); err != nil {
		return arena.NullIndex, err
	}
	for _, a := range annotations {
		if err := c.p.tree.AppendChild(idx, a); err != nil {
			return arena.NullIndex, err
		}
	}
	if c.Check(lexer.LParen) {
		args, closeTok, aerr := c.parseArgumentList()
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		for _, a := range args {
			if err := c.p.tree.AppendChild(idx, a); err != nil {
				return arena.NullIndex, err
			}
		}
		_ = closeTok
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

// parseMember dispatches a single class/interface/record/annotation-type
// body member: field, method, constructor, compact constructor, nested
// type, static/instance initializer.
func (c *Context) parseMember() (int, error) {
	start := c.Current().Start
	modifiers, err := c.parseModifiers()
	if err != nil {
		return arena.NullIndex, err
	}

	if c.Check(lexer.LBrace) {
		body, berr := c.parseBlock()
		if berr != nil {
			return arena.NullIndex, berr
		}
		kind := arena.KindInstanceInitializer
		if hasModifier(c, modifiers, "static") {
			kind = arena.KindStaticInitializer
		}
		idx, aerr := c.p.tree.Allocate(kind, start, c.Peek(-1).End)
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		if err := c.p.tree.AppendChild(idx, body); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil
	}

	switch c.Current().Kind {
	case lexer.KwClass, lexer.KwInterface, lexer.KwEnum, lexer.KwRecord, lexer.At:
		idx, terr := c.parseTypeDeclaration()
		if terr != nil {
			return arena.NullIndex, terr
		}
		for _, m := range modifiers {
			if err := c.p.tree.AppendChild(idx, m); err != nil {
				return arena.NullIndex, err
			}
		}
		return idx, nil
	}

	typeParams, tperr := c.parseTypeParameters()
	if tperr != nil {
		return arena.NullIndex, tperr
	}

	// Constructor or compact constructor: identifier matching the
	// enclosing type name followed by '(' or '{'. The parser doesn't
	// track the enclosing name here; it instead treats `Identifier {` (a
	// name directly followed by a block, with no parameter list) as a
	// compact constructor, and `Identifier (` as a regular constructor.
	if c.Check(lexer.Identifier) && c.Peek(1).Kind == lexer.LBrace {
		nameTok := c.Advance()
		body, berr := c.parseBlock()
		if berr != nil {
			return arena.NullIndex, berr
		}
		idx, aerr := c.p.tree.Allocate(arena.KindCompactConstructorDeclaration, start, c.Peek(-1).End)
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: nameTok.Text}); err != nil {
			return arena.NullIndex, err
		}
		for _, m := range modifiers {
			if err := c.p.tree.AppendChild(idx, m); err != nil {
				return arena.NullIndex, err
			}
		}
		if err := c.p.tree.AppendChild(idx, body); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil
	}
	if c.Check(lexer.Identifier) && c.Peek(1).Kind == lexer.LParen {
		return c.parseConstructorFrom(start, modifiers, typeParams)
	}

	// Annotation type element: `Type name() default value;`
	var typ int
	var terr error
	typ, terr = c.parseType()
	if terr != nil {
		return arena.NullIndex, terr
	}

	nameTok, nerr := c.Expect(lexer.Identifier, "member name")
	if nerr != nil {
		return arena.NullIndex, nerr
	}

	if c.Check(lexer.LParen) {
		return c.parseMethodFrom(start, modifiers, typeParams, typ, nameTok)
	}

	return c.parseFieldFrom(start, modifiers, typ, nameTok)
}

func hasModifier(c *Context, mods []int, text string) bool {
	for _, m := range mods {
		attrs, ok := c.p.tree.ModifierAttrsOf(m)
		if ok && attrs.Text == text {
			return true
		}
	}
	return false
}

func (c *Context) parseConstructorFrom(start int, modifiers, typeParams []int) (int, error) {
	nameTok := c.Advance()
	params, err := c.parseParameterList()
	if err != nil {
		return arena.NullIndex, err
	}
	if c.Match(lexer.KwThrows) {
		if _, terr := c.skipThrowsList(); terr != nil {
			return arena.NullIndex, terr
		}
	}
	body, berr := c.parseConstructorBody()
	if berr != nil {
		return arena.NullIndex, berr
	}
	idx, aerr := c.p.tree.Allocate(arena.KindConstructorDeclaration, start, c.Peek(-1).End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: nameTok.Text}); err != nil {
		return arena.NullIndex, err
	}
	for _, m := range modifiers {
		if err := c.p.tree.AppendChild(idx, m); err != nil {
			return arena.NullIndex, err
		}
	}
	for _, tp := range typeParams {
		if err := c.p.tree.AppendChild(idx, tp); err != nil {
			return arena.NullIndex, err
		}
	}
	for _, p := range params {
		if err := c.p.tree.AppendChild(idx, p); err != nil {
			return arena.NullIndex, err
		}
	}
	if err := c.p.tree.AppendChild(idx, body); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func (c *Context) parseMethodFrom(start int, modifiers, typeParams []int, retType int, nameTok lexer.Token) (int, error) {
	params, err := c.parseParameterList()
	if err != nil {
		return arena.NullIndex, err
	}
	// trailing C-style array dims on the return type, e.g. `int foo()[]`.
	retType, err = c.allocWithSuffixDims(0, c.startOf(retType), c.Peek(-1).End, retType)
	if err != nil {
		return arena.NullIndex, err
	}
	if c.Match(lexer.KwThrows) {
		if _, terr := c.skipThrowsList(); terr != nil {
			return arena.NullIndex, terr
		}
	}

	idx, aerr := c.p.tree.Allocate(arena.KindMethodDeclaration, start, start)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: nameTok.Text}); err != nil {
		return arena.NullIndex, err
	}
	for _, m := range modifiers {
		if err := c.p.tree.AppendChild(idx, m); err != nil {
			return arena.NullIndex, err
		}
	}
	for _, tp := range typeParams {
		if err := c.p.tree.AppendChild(idx, tp); err != nil {
			return arena.NullIndex, err
		}
	}
	if err := c.p.tree.AppendChild(idx, retType); err != nil {
		return arena.NullIndex, err
	}
	for _, p := range params {
		if err := c.p.tree.AppendChild(idx, p); err != nil {
			return arena.NullIndex, err
		}
	}

	if c.Check(lexer.KwDefault) { // annotation element default value
		c.Advance()
		val, verr := c.parseExpression()
		if verr != nil {
			return arena.NullIndex, verr
		}
		if err := c.p.tree.AppendChild(idx, val); err != nil {
			return arena.NullIndex, err
		}
		if _, err := c.Expect(lexer.Semicolon, "';'"); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil
	}

	if c.Match(lexer.Semicolon) {
		return idx, nil // abstract/interface/native method: no body
	}
	body, berr := c.parseBlock()
	if berr != nil {
		return arena.NullIndex, berr
	}
	if err := c.p.tree.AppendChild(idx, body); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

func (c *Context) parseFieldFrom(start int, modifiers []int, typ int, nameTok lexer.Token) (int, error) {
	idx, aerr := c.p.tree.Allocate(arena.KindFieldDeclaration, start, start)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	for _, m := range modifiers {
		if err := c.p.tree.AppendChild(idx, m); err != nil {
			return arena.NullIndex, err
		}
	}
	if err := c.p.tree.AppendChild(idx, typ); err != nil {
		return arena.NullIndex, err
	}

	declName := nameTok
	for {
		extraDims := 0
		for c.Check(lexer.LBracket) && c.Peek(1).Kind == lexer.RBracket {
			c.Advance()
			c.Advance()
			extraDims++
		}
		_ = extraDims
		declIdx, daerr := c.p.tree.Allocate(arena.KindIdentifierExpression, declName.Start, c.Peek(-1).End)
		if daerr != nil {
			return arena.NullIndex, daerr
		}
		if err := c.p.tree.SetIdentifierAttrs(declIdx, arena.IdentifierAttrs{Name: declName.Text}); err != nil {
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
		next, nerr := c.Expect(lexer.Identifier, "field name")
		if nerr != nil {
			return arena.NullIndex, nerr
		}
		declName = next
	}
	if _, err := c.Expect(lexer.Semicolon, "';'"); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

// parseParameterList parses `(Param, Param, ...)`, including a leading
// receiver parameter (`Outer.this`), varargs, and C-style extra array
// dimensions after the parameter name.
func (c *Context) parseParameterList() ([]int, error) {
	if _, err := c.Expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	var params []int
	for !c.Check(lexer.RParen) && !c.atEOF() {
		p, err := c.parseParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, p)
		if !c.Match(lexer.Comma) {
			break
		}
	}
	if _, err := c.Expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	return params, nil
}

func (c *Context) parseParameter() (int, error) {
	start := c.Current().Start
	modifiers, err := c.parseModifiers()
	if err != nil {
		return arena.NullIndex, err
	}
	isFinal := hasModifier(c, modifiers, "final")

	typ, terr := c.parseType()
	if terr != nil {
		return arena.NullIndex, terr
	}

	isVarargs := false
	if c.Check(lexer.Ellipsis) {
		c.Advance()
		isVarargs = true
	}

	// Receiver parameter: `Type.this` or `Type Outer.this`.
	if c.Check(lexer.KwThis) {
		c.Advance()
		idx, aerr := c.p.tree.Allocate(arena.KindReceiverParameter, start, c.Peek(-1).End)
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		if err := c.p.tree.SetParameterAttrs(idx, arena.ParameterAttrs{IsReceiver: true}); err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.AppendChild(idx, typ); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil
	}
	if c.Check(lexer.Identifier) && c.Peek(1).Kind == lexer.Dot && c.Peek(2).Kind == lexer.KwThis {
		c.Advance()
		c.Advance()
		c.Advance()
		idx, aerr := c.p.tree.Allocate(arena.KindReceiverParameter, start, c.Peek(-1).End)
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		if err := c.p.tree.SetParameterAttrs(idx, arena.ParameterAttrs{IsReceiver: true}); err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.AppendChild(idx, typ); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil
	}

	nameTok, nerr := c.Expect(lexer.Identifier, "parameter name")
	if nerr != nil {
		return arena.NullIndex, nerr
	}

	extraDims := 0
	for c.Check(lexer.LBracket) && c.Peek(1).Kind == lexer.RBracket {
		c.Advance()
		c.Advance()
		extraDims++
	}

	idx, aerr := c.p.tree.Allocate(arena.KindParameter, start, c.Peek(-1).End)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.SetParameterAttrs(idx, arena.ParameterAttrs{
		Name: nameTok.Text, IsVarargs: isVarargs, IsFinal: isFinal,
		IsUnnamed: nameTok.Text == "_", ExtraDims: extraDims,
	}); err != nil {
		return arena.NullIndex, err
	}
	for _, m := range modifiers {
		if err := c.p.tree.AppendChild(idx, m); err != nil {
			return arena.NullIndex, err
		}
	}
	if err := c.p.tree.AppendChild(idx, typ); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

// skipThrowsList parses (and discards, since exception declarations carry
// no formatting-relevant structure beyond the type list's own spacing) a
// `throws T1, T2` clause's type list, returning the types in case a future
// rule needs them.
func (c *Context) skipThrowsList() ([]int, error) {
	var types []int
	for {
		t, err := c.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
		if !c.Match(lexer.Comma) {
			break
		}
	}
	return types, nil
}
