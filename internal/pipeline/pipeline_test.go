package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/styler/internal/convert"
	"github.com/oxhq/styler/internal/rule"
)

func TestProcessWithNoRulesReturnsSourceUnchanged(t *testing.T) {
	src := "package com.example;\n\npublic class Widget {\n}\n"
	out, err := Process(src, Options{Version: 17})
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Equal(t, src, out.Formatted)
	assert.Empty(t, out.Violations)
	assert.Empty(t, out.ParseErrors)
}

// deleteFirstCharRule is a minimal Rule double used only to exercise
// Process's edit-application path; it is not a concrete formatting rule.
type deleteFirstCharRule struct{}

func (deleteFirstCharRule) ID() string          { return "delete-first-char" }
func (deleteFirstCharRule) Name() string        { return "delete first char" }
func (deleteFirstCharRule) Description() string { return "test double" }

func (deleteFirstCharRule) Analyze(tree *convert.Node, configs []rule.Config) ([]rule.Violation, error) {
	return []rule.Violation{{
		RuleID:   "delete-first-char",
		Severity: rule.Info,
		Range:    rule.Range{Start: 0, End: 1},
		Message:  "test",
		Edit:     &rule.Edit{Range: rule.Range{Start: 0, End: 1}, Replacement: ""},
	}}, nil
}

func (deleteFirstCharRule) Format(tree *convert.Node, src string, configs []rule.Config) (string, error) {
	return src[1:], nil
}

func TestProcessAppliesEngineEdits(t *testing.T) {
	src := "package com.example;\n\npublic class Widget {\n}\n"
	engine := rule.NewEngine(deleteFirstCharRule{})

	out, err := Process(src, Options{Version: 17, Engine: engine})
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, src[1:], out.Formatted)
	require.Len(t, out.Violations, 1)
}

func TestProcessSurfacesParseErrorsWithoutFailing(t *testing.T) {
	src := "class A { void m( {"
	out, err := Process(src, Options{Version: 17})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ParseErrors)
}
