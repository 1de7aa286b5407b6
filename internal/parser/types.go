package parser

import (
	"github.com/oxhq/styler/internal/arena"
	"github.com/oxhq/styler/internal/lexer"
)

var primitiveTypeKeywords = map[lexer.Kind]bool{
	lexer.KwBoolean: true, lexer.KwByte: true, lexer.KwChar: true,
	lexer.KwShort: true, lexer.KwInt: true, lexer.KwLong: true,
	lexer.KwFloat: true, lexer.KwDouble: true, lexer.KwVoid: true,
}

// parseType parses a full type reference: primitive, class/interface type
// (possibly generic and/or qualified), array type (bracket or varargs
// suffix), union type (catch clauses only, handled by the caller), or
// intersection type (cast/bound contexts, handled by the caller).
func (c *Context) parseType() (int, error) {
	if c.Check(lexer.KwVar) {
		tok := c.Advance()
		return c.allocWithSuffixDims(arena.KindVarType, tok.Start, tok.End)
	}

	if primitiveTypeKeywords[c.Current().Kind] {
		tok := c.Advance()
		return c.allocWithSuffixDims(arena.KindPrimitiveType, tok.Start, tok.End)
	}

	if c.Check(lexer.Question) {
		return c.parseWildcardType()
	}

	return c.parseClassOrArrayType()
}

func (c *Context) parseWildcardType() (int, error) {
	start := c.Advance().Start // '?'
	end := c.Peek(-1).End
	if c.Check(lexer.KwExtends) || c.Check(lexer.KwSuper) {
		c.Advance()
		bound, err := c.parseType()
		if err != nil {
			return arena.NullIndex, err
		}
		end = mustEnd(c, bound, end)
		idx, err := c.p.tree.Allocate(arena.KindWildcardType, start, end)
		if err != nil {
			return arena.NullIndex, err
		}
		if err := c.p.tree.AppendChild(idx, bound); err != nil {
			return arena.NullIndex, err
		}
		return idx, nil
	}
	return c.p.tree.Allocate(arena.KindWildcardType, start, end)
}

// parseClassOrArrayType parses a (possibly qualified, possibly generic)
// class type and any trailing `[]` dimensions.
func (c *Context) parseClassOrArrayType() (int, error) {
	if !c.Check(lexer.Identifier) {
		tok := c.Current()
		return arena.NullIndex, c.p.parseErrorAt(tok.Start, "expected a type, found "+tok.Kind.String())
	}
	start := c.Current().Start
	name := c.Advance().Text
	end := c.Peek(-1).End

	idx, err := c.p.tree.Allocate(arena.KindClassType, start, end)
	if err != nil {
		return arena.NullIndex, err
	}

	if c.Check(lexer.Lt) {
		args, aerr := c.parseTypeArguments()
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		for _, a := range args {
			if err := c.p.tree.AppendChild(idx, a); err != nil {
				return arena.NullIndex, err
			}
		}
		end = c.Peek(-1).End
	}

	for c.Check(lexer.Dot) {
		// Qualified type: Outer.Inner — re-anchor as a single class type
		// node whose range spans the whole qualified name; the simple
		// name and any of its own type arguments become trailing children.
		if c.Peek(1).Kind != lexer.Identifier {
			break
		}
		c.Advance() // '.'
		seg := c.Advance() // identifier
		name += "." + seg.Text
		end = c.Peek(-1).End
		if c.Check(lexer.Lt) {
			args, aerr := c.parseTypeArguments()
			if aerr != nil {
				return arena.NullIndex, aerr
			}
			for _, a := range args {
				if err := c.p.tree.AppendChild(idx, a); err != nil {
					return arena.NullIndex, err
				}
			}
		}
	}

	if err := c.p.tree.SetIdentifierAttrs(idx, arena.IdentifierAttrs{Name: name}); err != nil {
		return arena.NullIndex, err
	}

	return c.allocWithSuffixDims(arena.KindClassType, start, end, idx)
}

// allocWithSuffixDims wraps a base type node in KindArrayType nodes for
// each trailing `[]`, applying C-style trailing array dimensions after
// the base type (and after a varargs `...`, for parameter types).
func (c *Context) allocWithSuffixDims(kind arena.NodeKind, start, end int, existing ...int) (int, error) {
	base := arena.NullIndex
	var err error
	if len(existing) == 1 {
		base = existing[0]
	} else {
		base, err = c.p.tree.Allocate(kind, start, end)
		if err != nil {
			return arena.NullIndex, err
		}
	}

	for c.Check(lexer.LBracket) && c.Peek(1).Kind == lexer.RBracket {
		c.Advance()
		c.Advance()
		newEnd := c.Peek(-1).End
		arr, aerr := c.p.tree.Allocate(arena.KindArrayType, start, newEnd)
		if aerr != nil {
			return arena.NullIndex, aerr
		}
		if err := c.p.tree.AppendChild(arr, base); err != nil {
			return arena.NullIndex, err
		}
		base = arr
		end = newEnd
	}
	return base, nil
}

// parseTypeArguments parses `<T1, T2, ...>`, handling the greater-than
// hazard on close.
func (c *Context) parseTypeArguments() ([]int, error) {
	if _, err := c.Expect(lexer.Lt, "'<'"); err != nil {
		return nil, err
	}
	var args []int
	if c.Check(lexer.Gt) || gtPrefixed(c.Current().Kind) {
		if err := c.expectGTInGeneric(); err != nil {
			return nil, err
		}
		return args, nil
	}
	for {
		if c.Check(lexer.Question) {
			w, err := c.parseWildcardType()
			if err != nil {
				return nil, err
			}
			args = append(args, w)
		} else {
			t, err := c.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, t)
		}
		if c.Match(lexer.Comma) {
			continue
		}
		break
	}
	if err := c.expectGTInGeneric(); err != nil {
		return nil, err
	}
	return args, nil
}

func gtPrefixed(k lexer.Kind) bool {
	_, ok := gtSuffix(k)
	return ok
}

// parseTypeParameters parses `<T extends Bound1 & Bound2, U>` on a generic
// declaration.
func (c *Context) parseTypeParameters() ([]int, error) {
	if !c.Check(lexer.Lt) {
		return nil, nil
	}
	c.Advance()
	var params []int
	for {
		start := c.Current().Start
		nameTok, err := c.Expect(lexer.Identifier, "type parameter name")
		if err != nil {
			return nil, err
		}
		end := nameTok.End
		idx, aerr := c.p.tree.Allocate(arena.KindTypeParameter, start, end)
		if aerr != nil {
			return nil, aerr
		}
		if c.Match(lexer.KwExtends) {
			bound, berr := c.parseType()
			if berr != nil {
				return nil, berr
			}
			if err := c.p.tree.AppendChild(idx, bound); err != nil {
				return nil, err
			}
			for c.Match(lexer.Amp) {
				extra, eerr := c.parseType()
				if eerr != nil {
					return nil, eerr
				}
				if err := c.p.tree.AppendChild(idx, extra); err != nil {
					return nil, err
				}
			}
		}
		params = append(params, idx)
		if c.Match(lexer.Comma) {
			continue
		}
		break
	}
	if err := c.expectGTInGeneric(); err != nil {
		return nil, err
	}
	return params, nil
}

func mustEnd(c *Context, _ int, fallback int) int {
	return max(c.Peek(-1).End, fallback)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
