package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/styler/internal/convert"
)

// fakeRule is a minimal test double exercising the Rule contract; it is
// not a concrete formatting rule implementation (those are out of
// scope here) but a stand-in the engine can schedule.
type fakeRule struct {
	id         string
	violations []Violation
}

func (f *fakeRule) ID() string          { return f.id }
func (f *fakeRule) Name() string        { return f.id }
func (f *fakeRule) Description() string { return "test rule " + f.id }

func (f *fakeRule) Analyze(tree *convert.Node, configs []Config) ([]Violation, error) {
	return f.violations, nil
}

func (f *fakeRule) Format(tree *convert.Node, src string, configs []Config) (string, error) {
	return src, nil
}

func TestSeverityNaturalOrdering(t *testing.T) {
	assert.Equal(t, 10, Error.Weight())
	assert.Equal(t, 5, Warning.Weight())
	assert.Equal(t, 1, Info.Weight())
	assert.Positive(t, Error.Compare(Warning))
	assert.Positive(t, Warning.Compare(Info))
	assert.Negative(t, Info.Compare(Error))
}

func TestEngineAnalyzeRejectsNilTreeAndConfigs(t *testing.T) {
	e := NewEngine(&fakeRule{id: "r1"})
	_, err := e.Analyze(nil, []Config{})
	require.Error(t, err)

	tree := &convert.Node{}
	_, err = e.Analyze(tree, nil)
	require.Error(t, err)
}

func TestEngineAnalyzeRunsEveryRuleEvenIfOneFindsNothing(t *testing.T) {
	r1 := &fakeRule{id: "r1", violations: []Violation{{RuleID: "r1", Severity: Warning, Message: "m1"}}}
	r2 := &fakeRule{id: "r2"}
	e := NewEngine(r1, r2)

	results, err := e.Analyze(&convert.Node{}, []Config{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "r1", results[0].RuleID)
	assert.Len(t, results[0].Violations, 1)
	assert.Equal(t, "r2", results[1].RuleID)
	assert.Empty(t, results[1].Violations)
}

func TestDetectOverlapsFindsOverlappingEdits(t *testing.T) {
	v1 := Violation{RuleID: "a", Edit: &Edit{Range: Range{Start: 0, End: 10}, Replacement: "x"}}
	v2 := Violation{RuleID: "b", Edit: &Edit{Range: Range{Start: 5, End: 15}, Replacement: "y"}}
	overlaps := DetectOverlaps([]Violation{v1, v2})
	require.Len(t, overlaps, 1)
	assert.Contains(t, overlaps[0], "a")
	assert.Contains(t, overlaps[0], "b")
}

func TestDetectOverlapsIgnoresAdjacentEdits(t *testing.T) {
	v1 := Violation{RuleID: "a", Edit: &Edit{Range: Range{Start: 0, End: 10}, Replacement: "x"}}
	v2 := Violation{RuleID: "b", Edit: &Edit{Range: Range{Start: 10, End: 15}, Replacement: "y"}}
	overlaps := DetectOverlaps([]Violation{v1, v2})
	assert.Empty(t, overlaps)
}

func TestApplyEditsRewritesSourceRightToLeft(t *testing.T) {
	src := "hello world"
	v1 := Violation{RuleID: "a", Edit: &Edit{Range: Range{Start: 0, End: 5}, Replacement: "goodbye"}}
	v2 := Violation{RuleID: "b", Edit: &Edit{Range: Range{Start: 6, End: 11}, Replacement: "there"}}

	out, err := ApplyEdits(src, []Violation{v1, v2})
	require.NoError(t, err)
	assert.Equal(t, "goodbye there", out)
}

func TestApplyEditsRejectsOverlaps(t *testing.T) {
	src := "hello world"
	v1 := Violation{RuleID: "a", Edit: &Edit{Range: Range{Start: 0, End: 7}, Replacement: "x"}}
	v2 := Violation{RuleID: "b", Edit: &Edit{Range: Range{Start: 5, End: 11}, Replacement: "y"}}
	_, err := ApplyEdits(src, []Violation{v1, v2})
	require.Error(t, err)
}

func TestApplyEditsOnEmptyViolationsReturnsSourceUnchanged(t *testing.T) {
	out, err := ApplyEdits("unchanged", nil)
	require.NoError(t, err)
	assert.Equal(t, "unchanged", out)
}
