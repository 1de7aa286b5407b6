// Package diag defines Styler's closed fault taxonomy and the persistent
// ParseError record shared across the lexer, parser, converter, and rule
// engine.
package diag

import "fmt"

// Position is a byte-offset-accurate, line/column-derived source position.
type Position struct {
	Offset int // byte offset, 0-based
	Line   int // 1-based
	Column int // 1-based
}

// ParseError is the persistent shape of a parser diagnostic: position,
// line, column, and a non-empty message, plus an optional stable code
// for tooling that wants to filter or suppress specific diagnostics.
type ParseError struct {
	Position int
	Line     int
	Column   int
	Code     string
	Message  string
}

// String renders the canonical display form. When Code is empty it is
// omitted entirely so the format matches worked example byte
// for byte.
func (e ParseError) String() string {
	if e.Code == "" {
		return fmt.Sprintf("ParseError[line=%d, column=%d, position=%d, message=%q]",
			e.Line, e.Column, e.Position, e.Message)
	}
	return fmt.Sprintf("ParseError[line=%d, column=%d, position=%d, code=%q, message=%q]",
		e.Line, e.Column, e.Position, e.Code, e.Message)
}

func (e ParseError) Error() string { return e.String() }

// LexFault records a ParseError raised when the token stream being parsed
// contains a lexer-level Error token: an unterminated string/text-block/
// comment, or a byte sequence no operator or literal grammar recognizes.
type LexFault struct {
	ParseError
	Lexeme string
}

func (f LexFault) Error() string {
	return fmt.Sprintf("%s (unrecognized input %q)", f.ParseError.String(), f.Lexeme)
}

// VersionFault records a ParseError raised because a construct requires a
// newer language version than configured.
type VersionFault struct {
	ParseError
	RequiredVersion int
	ConfiguredVersion int
}

func (f VersionFault) Error() string {
	return fmt.Sprintf("%s (requires version %d, configured %d)",
		f.ParseError.String(), f.RequiredVersion, f.ConfiguredVersion)
}

// InvalidNodeStructureFault is fatal for the current conversion: a
// required child was missing or of an unexpected kind.
type InvalidNodeStructureFault struct {
	NodeIndex int
	Kind      string
	Start     int
	End       int
	Reason    string
}

func (f InvalidNodeStructureFault) Error() string {
	return fmt.Sprintf("InvalidNodeStructure: node %d (kind=%s, range=%d-%d): %s",
		f.NodeIndex, f.Kind, f.Start, f.End, f.Reason)
}

// ArenaClosedFault indicates a read-after-close on the arena. This is
// always a program bug, never a user error.
type ArenaClosedFault struct {
	Operation string
}

func (f ArenaClosedFault) Error() string {
	return fmt.Sprintf("ArenaClosed: operation %q attempted after arena close", f.Operation)
}

// ConfigurationFault is raised at rule-configuration construction time
// (malformed configuration, ReDoS-suspect pattern, unknown group name).
type ConfigurationFault struct {
	RuleID string
	Field  string
	Reason string
}

func (f ConfigurationFault) Error() string {
	return fmt.Sprintf("ConfigurationError: rule %q field %q: %s", f.RuleID, f.Field, f.Reason)
}

// DeadlineExceededFault is raised when the cooperative deadline has
// already passed at a polling boundary.
type DeadlineExceededFault struct {
	Stage string
}

func (f DeadlineExceededFault) Error() string {
	return fmt.Sprintf("DeadlineExceeded: during %s", f.Stage)
}

// ArgumentFault covers null-where-non-null-required, out-of-range index,
// and negative-capacity misuse.
type ArgumentFault struct {
	Operation string
	Reason    string
}

func (f ArgumentFault) Error() string {
	return fmt.Sprintf("ArgumentError: %s: %s", f.Operation, f.Reason)
}
