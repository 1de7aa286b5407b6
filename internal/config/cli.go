package config

import (
	"github.com/spf13/pflag"
)

// RegisterFlags defines the flag set shared by the format, check, and
// apply subcommands, mirroring internal/config/cli.go's BuildConfigFromFlags
// flag definitions but split out so cobra.Command.Flags() can own the
// *pflag.FlagSet instead of a bespoke one.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.IntP("version", "V", 0, "Target language version (e.g. 8, 11, 17, 21). 0 uses the project default.")
	fs.Duration("deadline", 0, "Cooperative cancellation deadline for parsing (0 uses the project default).")

	fs.BoolP("verbose", "v", false, "Enable verbose output.")
	fs.BoolP("json", "j", false, "Output results in JSON format.")
	fs.BoolP("diff", "D", false, "Show a unified diff of proposed changes.")
	fs.IntP("diff-context", "C", 0, "Lines of context for the diff (0 uses the project default).")

	fs.IntP("workers", "w", 0, "Number of concurrent workers, 0 means use all available CPUs.")

	fs.String("root", "", "Root directory to scan (default: current directory or positional targets).")
	fs.StringSlice("include", nil, "Include glob patterns (supports ** recursive globs).")
	fs.StringSlice("exclude", nil, "Exclude glob patterns (supports ** recursive globs).")
	fs.Bool("no-gitignore", false, "Disable .gitignore filtering.")
	fs.Int64("max-bytes", 0, "Maximum file size to process in bytes (0 uses the project default).")
	fs.Bool("follow-symlinks", false, "Follow symbolic links during directory traversal.")

	fs.Bool("commit", false, "Write changes directly to disk instead of staging them under the staging directory.")
	fs.Bool("interactive", false, "Prompt for confirmation before writing each changed file.")
	fs.String("rules", "", "Path to the project rule configuration file (default: .styler.yml).")
	fs.String("cache", "", "Path to the run-history cache database (default: .styler/cache.db).")
}

// BuildConfigFromFlags merges env defaults with the values parsed from
// fs, resolving targets from the remaining positional args, matching the
// teacher's cli.go/checks.go split between flag parsing and validation.
func BuildConfigFromFlags(fs *pflag.FlagSet, args []string) (*Config, []string, error) {
	cfg := LoadEnvDefaults()

	if err := applyIntOverride(fs, "version", &cfg.LanguageVersion); err != nil {
		return nil, nil, err
	}
	if v, err := fs.GetDuration("deadline"); err == nil && v > 0 {
		cfg.Deadline = v
	}

	cfg.Verbose, _ = fs.GetBool("verbose")
	cfg.JSONOutput, _ = fs.GetBool("json")
	cfg.ShowDiff, _ = fs.GetBool("diff")
	if err := applyIntOverride(fs, "diff-context", &cfg.DiffContext); err != nil {
		return nil, nil, err
	}
	cfg.Workers, _ = fs.GetInt("workers")

	cfg.Root, _ = fs.GetString("root")
	cfg.IncludeGlobs, _ = fs.GetStringSlice("include")
	cfg.ExcludeGlobs, _ = fs.GetStringSlice("exclude")
	cfg.NoGitignore, _ = fs.GetBool("no-gitignore")
	if maxBytes, err := fs.GetInt64("max-bytes"); err == nil && maxBytes > 0 {
		cfg.MaxBytes = maxBytes
	}
	cfg.FollowSymlinks, _ = fs.GetBool("follow-symlinks")

	cfg.Commit, _ = fs.GetBool("commit")
	cfg.Interactive, _ = fs.GetBool("interactive")
	if rules, err := fs.GetString("rules"); err == nil && rules != "" {
		cfg.RuleConfigPath = rules
	}
	if cache, err := fs.GetString("cache"); err == nil && cache != "" {
		cfg.CachePath = cache
	}

	if err := checkLanguageVersion(cfg.LanguageVersion); err != nil {
		return nil, nil, err
	}

	targets, err := resolveTargets(cfg.Root, args)
	if err != nil {
		return nil, nil, err
	}

	project, err := loadProjectConfigIfPresent(cfg.RuleConfigPath)
	if err != nil {
		return nil, nil, err
	}
	cfg.Project = project

	return cfg, targets, nil
}

func applyIntOverride(fs *pflag.FlagSet, name string, dst *int) error {
	v, err := fs.GetInt(name)
	if err != nil {
		return err
	}
	if v != 0 {
		*dst = v
	}
	return nil
}
