package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oxhq/styler/internal/diag"
)

// checkLanguageVersion rejects a version below Java 8, the oldest
// version Styler's strategy registry supports.
func checkLanguageVersion(version int) error {
	if version < 8 {
		return diag.ArgumentFault{Operation: "config.BuildConfigFromFlags", Reason: fmt.Sprintf("--version must be >= 8, got %d", version)}
	}
	return nil
}

// resolveTargets resolves positional arguments into scan targets,
// preferring explicit args over --root, and falling back to the current
// working directory, matching internal/config/checks.go's
// resolveTargets precedence.
func resolveTargets(root string, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if root != "" {
		return []string{root}, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return []string{cwd}, nil
}

// loadProjectConfigIfPresent reads and validates the project's
// .styler.yml if it exists; a missing file is not an error (projects may
// rely entirely on each rule's own defaults).
func loadProjectConfigIfPresent(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading rule configuration %s: %w", path, err)
	}

	var raw rawProjectConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, diag.ConfigurationFault{RuleID: "", Field: path, Reason: err.Error()}
	}

	return newProjectConfig(raw)
}
