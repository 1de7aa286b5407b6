package parser

import (
	"github.com/oxhq/styler/internal/arena"
	"github.com/oxhq/styler/internal/lexer"
)

// parseModuleDeclaration parses `[open] module name { directive* }`.
func (c *Context) parseModuleDeclaration() (int, error) {
	start := c.Current().Start
	var annotations []int
	for c.Check(lexer.At) {
		ann, err := c.parseAnnotation()
		if err != nil {
			return arena.NullIndex, err
		}
		annotations = append(annotations, ann)
	}
	isOpen := c.Match(lexer.KwOpen)
	if _, err := c.Expect(lexer.KwModule, "'module'"); err != nil {
		return arena.NullIndex, err
	}
	name, nerr := c.parseQualifiedNameText()
	if nerr != nil {
		return arena.NullIndex, nerr
	}
	idx, aerr := c.p.tree.Allocate(arena.KindModuleDeclaration, start, start)
	if aerr != nil {
		return arena.NullIndex, aerr
	}
	if err := c.p.tree.SetModuleAttrs(idx, arena.ModuleAttrs{Name: name, IsOpen: isOpen}); err != nil {
		return arena.NullIndex, err
	}
	for _, a := range annotations {
		if err := c.p.tree.AppendChild(idx, a); err != nil {
			return arena.NullIndex, err
		}
	}

	if _, err := c.Expect(lexer.LBrace, "'{'"); err != nil {
		return arena.NullIndex, err
	}
	for !c.Check(lexer.RBrace) && !c.atEOF() {
		directive, derr := c.parseModuleDirective()
		if derr != nil {
			c.p.recordError(derr)
			c.synchronize(map[lexer.Kind]bool{lexer.Semicolon: true, lexer.RBrace: true})
			c.Match(lexer.Semicolon)
			continue
		}
		if err := c.p.tree.AppendChild(idx, directive); err != nil {
			return arena.NullIndex, err
		}
	}
	if _, err := c.Expect(lexer.RBrace, "'}'"); err != nil {
		return arena.NullIndex, err
	}
	return idx, nil
}

// parseModuleDirective parses one of the five module directive kinds:
// requires, exports, opens, provides, uses.
func (c *Context) parseModuleDirective() (int, error) {
	start := c.Current().Start
	switch c.Current().Kind {
	case lexer.KwRequires:
		c.Advance()
		transitive, static := false, false
		for c.Check(lexer.KwTransitive) || c.Check(lexer.KwStatic) {
			if c.Match(lexer.KwTransitive) {
				transitive = true
				continue
			}
			c.Advance()
			static = true
		}
		name, err := c.parseQualifiedNameText()
		if err != nil {
			return arena.NullIndex, err
		}
		semi, serr := c.Expect(lexer.Semicolon, "';'")
		if serr != nil {
			return arena.NullIndex, serr
		}
		idx, aerr := c.p.tree.Allocate(arena.KindRequiresDirective, start, semi.End)
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		if err := c.p.tree.SetRequiresAttrs(idx, arena.RequiresAttrs{ModuleName: name, Transitive: transitive, StaticPhase: static}); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil

	case lexer.KwExports, lexer.KwOpens:
		isExports := c.Check(lexer.KwExports)
		c.Advance()
		pkg, err := c.parseQualifiedNameText()
		if err != nil {
			return arena.NullIndex, err
		}
		var targets []string
		if c.Match(lexer.KwTo) {
			for {
				t, terr := c.parseQualifiedNameText()
				if terr != nil {
					return arena.NullIndex, terr
				}
				targets = append(targets, t)
				if !c.Match(lexer.Comma) {
					break
				}
			}
		}
		semi, serr := c.Expect(lexer.Semicolon, "';'")
		if serr != nil {
			return arena.NullIndex, serr
		}
		kind := arena.KindExportsDirective
		if !isExports {
			kind = arena.KindOpensDirective
		}
		idx, aerr := c.p.tree.Allocate(kind, start, semi.End)
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		if err := c.p.tree.SetExportsOpensAttrs(idx, arena.ExportsOpensAttrs{PackageName: pkg, Targets: targets}); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil

	case lexer.KwProvides:
		c.Advance()
		service, err := c.parseQualifiedNameText()
		if err != nil {
			return arena.NullIndex, err
		}
		if _, err := c.Expect(lexer.KwWith, "'with'"); err != nil {
			return arena.NullIndex, err
		}
		var impls []string
		for {
			impl, ierr := c.parseQualifiedNameText()
			if ierr != nil {
				return arena.NullIndex, ierr
			}
			impls = append(impls, impl)
			if !c.Match(lexer.Comma) {
				break
			}
		}
		semi, serr := c.Expect(lexer.Semicolon, "';'")
		if serr != nil {
			return arena.NullIndex, serr
		}
		idx, aerr := c.p.tree.Allocate(arena.KindProvidesDirective, start, semi.End)
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		if err := c.p.tree.SetProvidesAttrs(idx, arena.ProvidesAttrs{Service: service, Implementations: impls}); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil

	case lexer.KwUses:
		c.Advance()
		service, err := c.parseQualifiedNameText()
		if err != nil {
			return arena.NullIndex, err
		}
		semi, serr := c.Expect(lexer.Semicolon, "';'")
		if serr != nil {
			return arena.NullIndex, serr
		}
		idx, aerr := c.p.tree.Allocate(arena.KindUsesDirective, start, semi.End)
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		if err := c.p.tree.SetUsesAttrs(idx, arena.UsesAttrs{Service: service}); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil

	default:
		tok := c.Current()
		return arena.NullIndex, c.p.parseErrorAt(tok.Start, "expected a module directive, found "+tok.Kind.String())
	}
}
