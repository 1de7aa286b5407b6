package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearStylerEnvVars() {
	for _, k := range []string{"STYLER_VERSION", "STYLER_DEADLINE_MS", "STYLER_CACHE_PATH", "STYLER_STAGING_DIR", "STYLER_RULES_FILE"} {
		os.Unsetenv(k)
	}
}

func TestLoadEnvDefaultsNoOverrides(t *testing.T) {
	clearStylerEnvVars()
	cfg := LoadEnvDefaults()
	assert.Equal(t, 17, cfg.LanguageVersion)
	assert.Equal(t, ".styler.yml", cfg.RuleConfigPath)
	assert.Equal(t, ".styler/cache.db", cfg.CachePath)
}

func TestLoadEnvDefaultsAppliesOverrides(t *testing.T) {
	clearStylerEnvVars()
	defer clearStylerEnvVars()

	os.Setenv("STYLER_VERSION", "21")
	os.Setenv("STYLER_DEADLINE_MS", "500")
	os.Setenv("STYLER_CACHE_PATH", "/tmp/run.db")
	os.Setenv("STYLER_STAGING_DIR", "/tmp/.stage")
	os.Setenv("STYLER_RULES_FILE", "rules.yml")

	cfg := LoadEnvDefaults()
	assert.Equal(t, 21, cfg.LanguageVersion)
	assert.Equal(t, "/tmp/run.db", cfg.CachePath)
	assert.Equal(t, "/tmp/.stage", cfg.StagingDir)
	assert.Equal(t, "rules.yml", cfg.RuleConfigPath)
}

func TestLoadEnvDefaultsIgnoresInvalidIntegers(t *testing.T) {
	clearStylerEnvVars()
	defer clearStylerEnvVars()

	os.Setenv("STYLER_VERSION", "not-a-number")
	cfg := LoadEnvDefaults()
	assert.Equal(t, 17, cfg.LanguageVersion)
}
