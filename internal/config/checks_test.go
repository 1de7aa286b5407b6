package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/styler/internal/diag"
)

func TestCheckLanguageVersionRejectsBelowEight(t *testing.T) {
	err := checkLanguageVersion(7)
	require.Error(t, err)
	var fault diag.ArgumentFault
	require.True(t, errors.As(err, &fault))
}

func TestCheckLanguageVersionAcceptsEight(t *testing.T) {
	assert.NoError(t, checkLanguageVersion(8))
}

func TestResolveTargetsPrefersArgs(t *testing.T) {
	targets, err := resolveTargets("/root", []string{"a.java", "b.java"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.java", "b.java"}, targets)
}

func TestResolveTargetsFallsBackToRoot(t *testing.T) {
	targets, err := resolveTargets("/some/root", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/some/root"}, targets)
}

func TestResolveTargetsFallsBackToCwd(t *testing.T) {
	targets, err := resolveTargets("", nil)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	cwd, _ := os.Getwd()
	assert.Equal(t, cwd, targets[0])
}

func TestLoadProjectConfigIfPresentMissingFileIsNotError(t *testing.T) {
	pc, err := loadProjectConfigIfPresent(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Nil(t, pc)
}

func TestLoadProjectConfigIfPresentParsesRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".styler.yml")
	contents := `
rules:
  - id: import-organizer
    groupOrder: ["java", "javax", ""]
  - id: suppress-todo
    suppress: "line < 10"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	pc, err := loadProjectConfigIfPresent(path)
	require.NoError(t, err)
	require.NotNil(t, pc)
	require.Len(t, pc.Rules, 2)
	assert.Equal(t, "import-organizer", pc.Rules[0].RuleID())
	assert.Equal(t, "suppress-todo", pc.Rules[1].RuleID())
}

func TestLoadProjectConfigIfPresentRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".styler.yml")
	require.NoError(t, os.WriteFile(path, []byte("rules: [this is not valid yaml"), 0o644))

	_, err := loadProjectConfigIfPresent(path)
	require.Error(t, err)
	var fault diag.ConfigurationFault
	assert.True(t, errors.As(err, &fault))
}
