package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	return fs
}

func TestBuildConfigFromFlagsDefaults(t *testing.T) {
	clearStylerEnvVars()
	fs := newTestFlagSet()
	require.NoError(t, fs.Parse(nil))

	cfg, targets, err := BuildConfigFromFlags(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, 17, cfg.LanguageVersion)
	require.Len(t, targets, 1)
}

func TestBuildConfigFromFlagsAppliesOverrides(t *testing.T) {
	clearStylerEnvVars()
	fs := newTestFlagSet()
	require.NoError(t, fs.Parse([]string{"--version=21", "--verbose", "--json", "--diff", "--commit", "--interactive"}))

	cfg, _, err := BuildConfigFromFlags(fs, []string{"src/Main.java"})
	require.NoError(t, err)
	assert.Equal(t, 21, cfg.LanguageVersion)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.JSONOutput)
	assert.True(t, cfg.ShowDiff)
	assert.True(t, cfg.Commit)
	assert.True(t, cfg.Interactive)
}

func TestBuildConfigFromFlagsRejectsBadVersion(t *testing.T) {
	clearStylerEnvVars()
	fs := newTestFlagSet()
	require.NoError(t, fs.Parse([]string{"--version=5"}))

	_, _, err := BuildConfigFromFlags(fs, nil)
	require.Error(t, err)
}

func TestBuildConfigFromFlagsLoadsProjectConfig(t *testing.T) {
	clearStylerEnvVars()
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "rules.yml")
	require.NoError(t, os.WriteFile(rulesPath, []byte("rules:\n  - id: suppress-todo\n    suppress: \"line < 5\"\n"), 0o644))

	fs := newTestFlagSet()
	require.NoError(t, fs.Parse([]string{"--rules=" + rulesPath}))

	cfg, _, err := BuildConfigFromFlags(fs, nil)
	require.NoError(t, err)
	require.NotNil(t, cfg.Project)
	require.Len(t, cfg.Project.Rules, 1)
}
