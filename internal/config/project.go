package config

import (
	"fmt"

	"github.com/oxhq/styler/internal/rule"
)

// rawRuleConfig is the YAML shape of one entry under a .styler.yml
// "rules:" list, mirroring awsqed-config-formatter's YAML-first
// configuration style: flat, declarative records keyed by rule id.
type rawRuleConfig struct {
	ID            string            `yaml:"id"`
	GroupOrder    []string          `yaml:"groupOrder"`
	GroupPatterns map[string]string `yaml:"groupPatterns"`
	Suppress      string            `yaml:"suppress"`
}

type rawProjectConfig struct {
	Rules []rawRuleConfig `yaml:"rules"`
}

// ProjectConfig is the validated form of a project's .styler.yml: a
// ready-to-use rule.Config per configured rule id.
type ProjectConfig struct {
	Rules []rule.Config
}

// newProjectConfig validates every entry in raw, constructing the
// concrete rule.Config each one describes. A rule id with a non-empty
// GroupOrder becomes an ImportOrganizerConfig; otherwise it becomes a
// SuppressionConfig (possibly a no-op one, if Suppress is empty).
func newProjectConfig(raw rawProjectConfig) (*ProjectConfig, error) {
	pc := &ProjectConfig{Rules: make([]rule.Config, 0, len(raw.Rules))}

	for _, r := range raw.Rules {
		if r.ID == "" {
			return nil, fmt.Errorf("rule configuration entry missing required \"id\" field")
		}

		if len(r.GroupOrder) > 0 {
			cfg, err := rule.NewImportOrganizerConfig(r.ID, r.GroupOrder, r.GroupPatterns)
			if err != nil {
				return nil, err
			}
			pc.Rules = append(pc.Rules, cfg)
			continue
		}

		cfg, err := rule.NewSuppressionConfig(r.ID, r.Suppress)
		if err != nil {
			return nil, err
		}
		pc.Rules = append(pc.Rules, cfg)
	}

	return pc, nil
}
