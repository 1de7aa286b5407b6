package parser

import "github.com/oxhq/styler/internal/lexer"

// Version thresholds for the constructs gated behind built-in strategies.
// These mirror the target language's own preview/stable history; a
// strategy whose CanHandle returns false simply falls through so the
// surrounding grammar treats the contextual keyword as a plain identifier
// instead.
const (
	versionRecords                 = 16
	versionSealedClasses           = 17
	versionPatternInstanceof       = 16
	versionPatternSwitch           = 21
	versionUnnamedVariables        = 21
	versionFlexibleConstructorBody = 22
)

// recordDeclarationStrategy recognizes `record Name(...)` at the top level
// or in a type body. Below versionRecords, `record` is left as a plain
// identifier and the surrounding grammar parses it as a method/field name
// or type reference instead.
type recordDeclarationStrategy struct{}

func (recordDeclarationStrategy) Name() string  { return "record-declaration" }
func (recordDeclarationStrategy) Priority() int { return PriorityKeywordBased }

func (recordDeclarationStrategy) CanHandle(version int, phase Phase, ctx *Context) bool {
	if version < versionRecords {
		return false
	}
	if phase != PhaseTopLevel && phase != PhaseTypeBody {
		return false
	}
	return ctx.Check(lexer.KwRecord) && ctx.Peek(1).Kind == lexer.Identifier
}

func (s recordDeclarationStrategy) ParseConstruct(ctx *Context) (int, error) {
	return ctx.parseTypeDeclaration()
}

// sealedHierarchyStrategy recognizes the `sealed`/`non-sealed` modifiers
// and the `permits` clause on a type declaration. Below versionSealedClasses
// these contextual keywords are left as plain identifiers.
type sealedHierarchyStrategy struct{}

func (sealedHierarchyStrategy) Name() string  { return "sealed-hierarchy" }
func (sealedHierarchyStrategy) Priority() int { return PriorityKeywordBased }

func (sealedHierarchyStrategy) CanHandle(version int, phase Phase, ctx *Context) bool {
	if version < versionSealedClasses {
		return false
	}
	if phase != PhaseTopLevel && phase != PhaseTypeBody {
		return false
	}
	return ctx.Check(lexer.KwSealed) || ctx.Check(lexer.KwNonSealed)
}

func (s sealedHierarchyStrategy) ParseConstruct(ctx *Context) (int, error) {
	return ctx.parseTypeDeclaration()
}

// patternMatchingInstanceofStrategy recognizes `x instanceof Type binding`
// (optionally with a record deconstruction pattern or `when` guard).
// Below versionPatternInstanceof, instanceof's right-hand side is parsed
// as a bare type with no binding.
type patternMatchingInstanceofStrategy struct{}

func (patternMatchingInstanceofStrategy) Name() string  { return "pattern-matching-instanceof" }
func (patternMatchingInstanceofStrategy) Priority() int { return PriorityPhaseAware }

func (patternMatchingInstanceofStrategy) CanHandle(version int, phase Phase, ctx *Context) bool {
	if version < versionPatternInstanceof {
		return false
	}
	return phase == PhaseExpression && ctx.Check(lexer.KwInstanceof)
}

func (s patternMatchingInstanceofStrategy) ParseConstruct(ctx *Context) (int, error) {
	// The left operand has already been parsed by the caller in this
	// architecture (parseBinary owns precedence climbing); strategies
	// for infix constructs are consulted by name only, for diagnostics
	// and version gating — the actual splice happens in parseBinary via
	// parseInstanceof, which performs the identical version check.
	return ctx.parseExpression()
}

// unnamedVariableStrategy recognizes a bare `_` binding in a lambda
// parameter, pattern variable, or catch parameter. Below
// versionUnnamedVariables, `_` is treated as an ordinary identifier.
type unnamedVariableStrategy struct{}

func (unnamedVariableStrategy) Name() string  { return "unnamed-variable" }
func (unnamedVariableStrategy) Priority() int { return PriorityKeywordBased }

func (unnamedVariableStrategy) CanHandle(version int, phase Phase, ctx *Context) bool {
	if version < versionUnnamedVariables {
		return false
	}
	return ctx.Check(lexer.Identifier) && ctx.Current().Text == "_"
}

func (s unnamedVariableStrategy) ParseConstruct(ctx *Context) (int, error) {
	return ctx.parseExpression()
}

// flexibleConstructorBodyStrategy recognizes statements appearing before
// an explicit `this(...)`/`super(...)` call at the start of a constructor
// body — legal from versionFlexibleConstructorBody onward. Below that
// version the constructor-body grammar requires the explicit constructor
// invocation, if present, to be the very first statement; this strategy
// needs PHASE_AWARE priority over a purely keyword-based match because
// the same `this(`/`super(` token sequence is legal in ordinary
// statement position too, and only the enclosing phase tells them
// apart.
type flexibleConstructorBodyStrategy struct{}

func (flexibleConstructorBodyStrategy) Name() string  { return "flexible-constructor-body" }
func (flexibleConstructorBodyStrategy) Priority() int { return PriorityPhaseAware }

func (flexibleConstructorBodyStrategy) CanHandle(version int, phase Phase, ctx *Context) bool {
	if phase != PhaseConstructorBody {
		return false
	}
	if !isExplicitConstructorInvocationStart(ctx) {
		return false
	}
	if version >= versionFlexibleConstructorBody {
		return true
	}
	// Pre-22: only accept when the explicit constructor invocation is
	// the first statement in the body (the classic restriction).
	return ctx.atConstructorBodyStart
}

// isExplicitConstructorInvocationStart reports whether the parser is sat
// on a bare `this(` or `super(` — the only two forms an explicit
// constructor invocation can take.
func isExplicitConstructorInvocationStart(ctx *Context) bool {
	if !ctx.Check(lexer.KwThis) && !ctx.Check(lexer.KwSuper) {
		return false
	}
	return ctx.Peek(1).Kind == lexer.LParen
}

func (s flexibleConstructorBodyStrategy) ParseConstruct(ctx *Context) (int, error) {
	return ctx.parseStatement()
}
