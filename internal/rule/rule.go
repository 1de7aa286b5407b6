// Package rule defines Styler's rule-engine contract: the uniform
// analyzer/formatter interface every concrete formatting rule implements,
// plus the engine that runs rules over a converted tree and the helpers
// that detect and reject cross-rule edit overlaps.
package rule

import "github.com/oxhq/styler/internal/convert"

// Severity is a violation's natural-ordered level.
type Severity int

const (
	Info    Severity = 1
	Warning Severity = 5
	Error   Severity = 10
)

// Weight returns the severity's numeric score, exposed for callers that
// rank violations rather than compare them directly.
func (s Severity) Weight() int { return int(s) }

// Compare implements natural ordering: positive when s outranks other,
// negative when it's outranked, zero when equal.
func (s Severity) Compare(other Severity) int { return int(s) - int(other) }

func (s Severity) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	case Info:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// Range is a half-open byte-offset span within the source, shared by
// violations and proposed edits.
type Range struct {
	Start int
	End   int
}

// Edit is a proposed textual replacement of Range with Replacement.
type Edit struct {
	Range       Range
	Replacement string
}

// Violation is one rule's report of a nonconforming region, optionally
// carrying a proposed Edit.
type Violation struct {
	RuleID   string
	Severity Severity
	Range    Range
	Message  string
	Edit     *Edit
}

// Config is the minimal shape every rule configuration record satisfies:
// the rule identifier it applies to.
// Concrete configuration types embed baseConfig or implement RuleID
// directly; each validates its own fields at construction time and
// returns a ConfigurationFault rather than a zero value on failure.
type Config interface {
	RuleID() string
}

// Rule is the uniform interface every formatting rule implements.
type Rule interface {
	ID() string
	Name() string
	Description() string

	// Analyze reports violations found in tree under the given
	// configurations. configs must be non-nil; pass an empty slice, never nil,
	// when no configuration applies.
	Analyze(tree *convert.Node, configs []Config) ([]Violation, error)

	// Format returns tree's source rewritten to conform to this rule.
	// format(format(s)) == format(s) for the same configuration.
	Format(tree *convert.Node, src string, configs []Config) (string, error)
}

// selectConfig returns the configuration whose RuleID matches ruleID, or
// nil if none is present — callers fall back to the rule's own default.
func selectConfig(ruleID string, configs []Config) Config {
	for _, c := range configs {
		if c.RuleID() == ruleID {
			return c
		}
	}
	return nil
}
