package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/styler/internal/config"
)

func newTestConfig(t *testing.T, dir string) *config.Config {
	t.Helper()
	cfg := config.LoadEnvDefaults()
	cfg.CachePath = filepath.Join(dir, ".styler", "cache.db")
	cfg.StagingDir = filepath.Join(dir, ".styler")
	cfg.RuleConfigPath = filepath.Join(dir, ".styler.yml")
	cfg.Workers = 1
	return cfg
}

func TestProcessTargetsReportsUnchangedFileWithNoRules(t *testing.T) {
	dir := t.TempDir()
	src := "package com.example;\n\npublic class Widget {\n}\n"
	path := filepath.Join(dir, "Widget.java")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg := newTestConfig(t, dir)
	summary, err := processTargets(cfg, []string{path}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.processed)
	assert.Equal(t, 0, summary.changed)
	assert.Equal(t, 0, summary.failed)
}

func TestProcessTargetsFailsScanOnMissingTarget(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "DoesNotExist.java")

	cfg := newTestConfig(t, dir)
	_, err := processTargets(cfg, []string{missing}, nil)
	require.Error(t, err)
}

func TestRuleSetHashChangesWithProjectConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := newTestConfig(t, dir)

	before := ruleSetHash(cfg)
	require.NoError(t, os.WriteFile(cfg.RuleConfigPath, []byte("rules:\n  - id: suppress-todo\n    suppress: \"line < 5\"\n"), 0o644))
	after := ruleSetHash(cfg)

	assert.NotEqual(t, before, after)
}

func TestSelectWriterPicksStagingByDefault(t *testing.T) {
	cfg := config.LoadEnvDefaults()
	w := selectWriter(cfg)
	assert.Equal(t, "*writer.StagingWriter", fmt.Sprintf("%T", w))
}

func TestSelectWriterPicksDiskWriterOnCommit(t *testing.T) {
	cfg := config.LoadEnvDefaults()
	cfg.Commit = true
	w := selectWriter(cfg)
	assert.Equal(t, "*writer.DiskWriter", fmt.Sprintf("%T", w))
}
