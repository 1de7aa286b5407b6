// Package config loads Styler's configuration from three layers — CLI
// flags, a project .styler.yml, and STYLER_* environment variables —
// with env defaults in config.go, flag parsing in cli.go, and
// validation split into small checkX helpers in checks.go.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the fully resolved configuration for one Styler
// invocation, after flags, project YAML, and environment overrides have
// all been merged.
type Config struct {
	LanguageVersion int
	Deadline        time.Duration

	Verbose    bool
	JSONOutput bool
	ShowDiff   bool
	DiffContext int

	Workers int

	Root           string
	IncludeGlobs   []string
	ExcludeGlobs   []string
	NoGitignore    bool
	MaxBytes       int64
	FollowSymlinks bool

	Commit      bool // write changes directly instead of staging
	Interactive bool // prompt per file before writing (implies direct write)
	StagingDir  string
	CachePath   string

	RuleConfigPath string
	Project        *ProjectConfig
}

// LoadEnvDefaults builds a Config from STYLER_* environment variables,
// falling back to reasonable defaults for any unset variable.
func LoadEnvDefaults() *Config {
	cfg := &Config{
		LanguageVersion: 17,
		Deadline:        30 * time.Second,
		DiffContext:     3,
		MaxBytes:        5 * 1024 * 1024,
		StagingDir:      ".styler",
		CachePath:       ".styler/cache.db",
		RuleConfigPath:  ".styler.yml",
	}

	if v := os.Getenv("STYLER_VERSION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LanguageVersion = n
		}
	}
	if v := os.Getenv("STYLER_DEADLINE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Deadline = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("STYLER_CACHE_PATH"); v != "" {
		cfg.CachePath = v
	}
	if v := os.Getenv("STYLER_STAGING_DIR"); v != "" {
		cfg.StagingDir = v
	}
	if v := os.Getenv("STYLER_RULES_FILE"); v != "" {
		cfg.RuleConfigPath = v
	}

	return cfg
}
