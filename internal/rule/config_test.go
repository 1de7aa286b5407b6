package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/styler/internal/diag"
)

func TestNewSuppressionConfigRejectsEmptyRuleID(t *testing.T) {
	_, err := NewSuppressionConfig("", `path matches "vendor/"`)
	require.Error(t, err)
	var fault diag.ConfigurationFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "ruleID", fault.Field)
}

func TestNewSuppressionConfigAllowsEmptyScriptAsNoOp(t *testing.T) {
	cfg, err := NewSuppressionConfig("import-organizer", "")
	require.NoError(t, err)
	assert.False(t, cfg.Suppresses("any/path.java", 1))
}

func TestNewSuppressionConfigRejectsMalformedScript(t *testing.T) {
	_, err := NewSuppressionConfig("import-organizer", "path matches (")
	require.Error(t, err)
	var fault diag.ConfigurationFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "Script", fault.Field)
}

func TestNewSuppressionConfigRejectsNonBooleanScript(t *testing.T) {
	_, err := NewSuppressionConfig("import-organizer", `line`)
	require.Error(t, err)
}

func TestSuppressionConfigEvaluatesPredicate(t *testing.T) {
	cfg, err := NewSuppressionConfig("import-organizer", `path matches "vendor/" || line < 5`)
	require.NoError(t, err)

	assert.True(t, cfg.Suppresses("vendor/lib/Foo.java", 100))
	assert.True(t, cfg.Suppresses("src/Foo.java", 3))
	assert.False(t, cfg.Suppresses("src/Foo.java", 42))
}

func TestNewImportOrganizerConfigRejectsEmptyRuleID(t *testing.T) {
	_, err := NewImportOrganizerConfig("", []string{"java", "javax"}, nil)
	require.Error(t, err)
}

func TestNewImportOrganizerConfigRejectsEmptyGroupOrder(t *testing.T) {
	_, err := NewImportOrganizerConfig("import-organizer", nil, nil)
	require.Error(t, err)
	var fault diag.ConfigurationFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "GroupOrder", fault.Field)
}

func TestNewImportOrganizerConfigRejectsNestedQuantifierPattern(t *testing.T) {
	_, err := NewImportOrganizerConfig("import-organizer", []string{"java"}, map[string]string{
		"java": "^(java.+)+$",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested quantifier")
}

func TestNewImportOrganizerConfigAcceptsSafePattern(t *testing.T) {
	cfg, err := NewImportOrganizerConfig("import-organizer", []string{"java", "javax", "other"}, map[string]string{
		"java":  `^java\.`,
		"javax": `^javax\.`,
	})
	require.NoError(t, err)
	assert.True(t, cfg.GroupPatterns["java"].MatchString("java.util.List"))
	assert.False(t, cfg.GroupPatterns["javax"].MatchString("java.util.List"))
}

func TestHasNestedQuantifierFlagsClassicBacktrackingShapes(t *testing.T) {
	assert.True(t, hasNestedQuantifier("(a+)+"))
	assert.True(t, hasNestedQuantifier("(a*)*"))
	assert.True(t, hasNestedQuantifier("^(a+)+$"))
	assert.False(t, hasNestedQuantifier(`^java\.`))
	assert.False(t, hasNestedQuantifier("a+b*c"))
}
