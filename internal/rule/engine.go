package rule

import (
	"fmt"
	"sort"

	"github.com/oxhq/styler/internal/convert"
	"github.com/oxhq/styler/internal/diag"
)

// Engine runs a fixed set of rules over one converted tree, handing each
// rule the full configuration list. Cross-rule edit overlaps are
// reported by DetectOverlaps and rejected by ApplyEdits.
type Engine struct {
	rules []Rule
}

// NewEngine builds an engine that runs rules in the given order. Order
// only affects Violation slice ordering for rules whose ranges don't
// overlap; overlapping edits across rules are rejected regardless of
// registration order.
func NewEngine(rules ...Rule) *Engine {
	return &Engine{rules: rules}
}

// AnalyzeResult bundles one rule's violations with the error it returned,
// if any, so a single failing rule doesn't hide the others' results.
type AnalyzeResult struct {
	RuleID     string
	Violations []Violation
	Err        error
}

// Analyze runs every registered rule's Analyze against tree. The full
// configs list is handed to each rule unfiltered; each rule selects its
// own entry by id.
func (e *Engine) Analyze(tree *convert.Node, configs []Config) ([]AnalyzeResult, error) {
	if tree == nil {
		return nil, diag.ArgumentFault{Operation: "Engine.Analyze", Reason: "tree must be non-nil"}
	}
	if configs == nil {
		return nil, diag.ArgumentFault{Operation: "Engine.Analyze", Reason: "configs must be non-nil (pass an empty slice)"}
	}
	results := make([]AnalyzeResult, 0, len(e.rules))
	for _, r := range e.rules {
		violations, err := r.Analyze(tree, configs)
		results = append(results, AnalyzeResult{RuleID: r.ID(), Violations: violations, Err: err})
	}
	return results, nil
}

// DetectOverlaps reports a description for every pair of violations
// (across all rules, already-resolved per rule) whose edit ranges
// overlap, sorted by start offset — the driver is responsible for
// resolving these.
func DetectOverlaps(violations []Violation) []string {
	withEdits := make([]Violation, 0, len(violations))
	for _, v := range violations {
		if v.Edit != nil {
			withEdits = append(withEdits, v)
		}
	}
	sort.Slice(withEdits, func(i, j int) bool {
		return withEdits[i].Edit.Range.Start < withEdits[j].Edit.Range.Start
	})

	var overlaps []string
	for i := 0; i+1 < len(withEdits); i++ {
		cur, next := withEdits[i], withEdits[i+1]
		if cur.Edit.Range.End > next.Edit.Range.Start {
			overlaps = append(overlaps, fmt.Sprintf(
				"overlap between %s edit at %d-%d and %s edit at %d-%d",
				cur.RuleID, cur.Edit.Range.Start, cur.Edit.Range.End,
				next.RuleID, next.Edit.Range.Start, next.Edit.Range.End))
		}
	}
	return overlaps
}

// ApplyEdits rewrites src by applying every violation's edit, rejecting
// the whole batch if any two edits overlap. Edits are applied in
// reverse start-offset order so earlier offsets stay valid as later
// (rightward) edits are applied first.
func ApplyEdits(src string, violations []Violation) (string, error) {
	if overlaps := DetectOverlaps(violations); len(overlaps) > 0 {
		return "", fmt.Errorf("rule: cannot apply overlapping edits: %v", overlaps)
	}

	edits := make([]Edit, 0, len(violations))
	for _, v := range violations {
		if v.Edit != nil {
			edits = append(edits, *v.Edit)
		}
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].Range.Start > edits[j].Range.Start })

	out := []byte(src)
	for _, e := range edits {
		if e.Range.Start < 0 || e.Range.End > len(out) || e.Range.Start > e.Range.End {
			return "", diag.ArgumentFault{Operation: "ApplyEdits", Reason: fmt.Sprintf("edit out of bounds: %d-%d", e.Range.Start, e.Range.End)}
		}
		rewritten := make([]byte, 0, len(out)+len(e.Replacement))
		rewritten = append(rewritten, out[:e.Range.Start]...)
		rewritten = append(rewritten, e.Replacement...)
		rewritten = append(rewritten, out[e.Range.End:]...)
		out = rewritten
	}
	return string(out), nil
}
