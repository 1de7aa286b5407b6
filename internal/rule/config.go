package rule

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/oxhq/styler/internal/diag"
)

// baseConfig supplies the RuleID() accessor shared by every concrete
// configuration record.
type baseConfig struct {
	ruleID string
}

// RuleID returns the rule identifier this configuration applies to.
func (b baseConfig) RuleID() string { return b.ruleID }

// SuppressionConfig is carried by every configuration that supports a
// project-defined suppression predicate. The expression sees `path` (string) and `line` (int)
// and must evaluate to a boolean; a true result suppresses the violation.
type SuppressionConfig struct {
	baseConfig
	Script  string
	program *vm.Program
}

// NewSuppressionConfig compiles script at construction time, rejecting a
// malformed or non-boolean expression with a ConfigurationFault before
// any rule ever runs.
func NewSuppressionConfig(ruleID, script string) (SuppressionConfig, error) {
	if ruleID == "" {
		return SuppressionConfig{}, diag.ConfigurationFault{RuleID: ruleID, Field: "ruleID", Reason: "must be non-empty"}
	}
	if script == "" {
		return SuppressionConfig{baseConfig: baseConfig{ruleID: ruleID}}, nil
	}
	program, err := expr.Compile(script, expr.Env(suppressionEnv{}), expr.AsBool())
	if err != nil {
		return SuppressionConfig{}, diag.ConfigurationFault{RuleID: ruleID, Field: "Script", Reason: err.Error()}
	}
	return SuppressionConfig{baseConfig: baseConfig{ruleID: ruleID}, Script: script, program: program}, nil
}

type suppressionEnv struct {
	Path string `expr:"path"`
	Line int    `expr:"line"`
}

// Suppresses evaluates the compiled predicate against a violation's
// location; a config with no script never suppresses.
func (s SuppressionConfig) Suppresses(path string, line int) bool {
	if s.program == nil {
		return false
	}
	out, err := vm.Run(s.program, suppressionEnv{Path: path, Line: line})
	if err != nil {
		return false
	}
	result, _ := out.(bool)
	return result
}

// ImportOrganizerConfig configures the import-organizer rule: the group
// order imports are sorted into, and optional custom group patterns.
type ImportOrganizerConfig struct {
	baseConfig
	GroupOrder    []string
	GroupPatterns map[string]*regexp.Regexp
}

// NewImportOrganizerConfig validates groupOrder is non-empty and every
// pattern in groupPatterns is a valid regular expression free of
// ReDoS-prone nested quantifiers, rejecting otherwise with a
// ConfigurationFault. The characters a pattern may contain are not
// otherwise restricted.
func NewImportOrganizerConfig(ruleID string, groupOrder []string, groupPatterns map[string]string) (ImportOrganizerConfig, error) {
	if ruleID == "" {
		return ImportOrganizerConfig{}, diag.ConfigurationFault{RuleID: ruleID, Field: "ruleID", Reason: "must be non-empty"}
	}
	if len(groupOrder) == 0 {
		return ImportOrganizerConfig{}, diag.ConfigurationFault{RuleID: ruleID, Field: "GroupOrder", Reason: "must be non-empty"}
	}
	compiled := make(map[string]*regexp.Regexp, len(groupPatterns))
	for group, pattern := range groupPatterns {
		if err := rejectReDoS(pattern); err != nil {
			return ImportOrganizerConfig{}, diag.ConfigurationFault{RuleID: ruleID, Field: "GroupPatterns[" + group + "]", Reason: err.Error()}
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return ImportOrganizerConfig{}, diag.ConfigurationFault{RuleID: ruleID, Field: "GroupPatterns[" + group + "]", Reason: err.Error()}
		}
		compiled[group] = re
	}
	return ImportOrganizerConfig{baseConfig: baseConfig{ruleID: ruleID}, GroupOrder: groupOrder, GroupPatterns: compiled}, nil
}

// rejectReDoS scans pattern for nested-quantifier constructs that are
// classic ReDoS triggers — e.g. `(a+)+`, `(a*)*`, `(a+)*` — rejecting
// before the pattern ever reaches regexp.Compile.
func rejectReDoS(pattern string) error {
	if _, err := syntax.Parse(pattern, syntax.Perl); err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	if hasNestedQuantifier(pattern) {
		return fmt.Errorf("pattern %q contains a nested quantifier (ReDoS risk)", pattern)
	}
	return nil
}

// hasNestedQuantifier does a cheap textual scan for a quantified group
// immediately followed by another quantifier — the shape of nearly every
// published catastrophic-backtracking regex. It is deliberately
// conservative: it may reject some safe patterns, never accepts an
// unsafe one whose structure is this literal.
func hasNestedQuantifier(pattern string) bool {
	quantifiers := "*+"
	depth := 0
	groupHasQuantifiedChild := make([]bool, 0, 8)
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++ // skip the escaped rune
		case '(':
			depth++
			groupHasQuantifiedChild = append(groupHasQuantifiedChild, false)
		case ')':
			if depth == 0 {
				continue
			}
			childQuantified := groupHasQuantifiedChild[len(groupHasQuantifiedChild)-1]
			groupHasQuantifiedChild = groupHasQuantifiedChild[:len(groupHasQuantifiedChild)-1]
			depth--
			if i+1 < len(pattern) && strings.ContainsRune(quantifiers, rune(pattern[i+1])) && childQuantified {
				return true
			}
		default:
			if strings.ContainsRune(quantifiers, rune(pattern[i])) && depth > 0 {
				groupHasQuantifiedChild[depth-1] = true
			}
		}
	}
	return false
}
