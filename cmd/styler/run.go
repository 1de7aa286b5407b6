package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"runtime"
	"sync"

	"github.com/oxhq/styler/internal/config"
	"github.com/oxhq/styler/internal/metrics"
	"github.com/oxhq/styler/internal/pipeline"
	"github.com/oxhq/styler/internal/report"
	"github.com/oxhq/styler/internal/rule"
	"github.com/oxhq/styler/internal/scanner"
	"github.com/oxhq/styler/internal/store"
	"github.com/oxhq/styler/internal/writer"
)

// runSummary aggregates per-file outcomes across one scan, tracking
// totals and failures across the worker pool to pick the process's
// exit code.
type runSummary struct {
	mu         sync.Mutex
	processed  int
	changed    int
	violations int
	parseErrs  int
	failed     int
}

func (s *runSummary) record(res report.FileResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed++
	if res.Outcome == "error" {
		s.failed++
		return
	}
	if res.Outcome == "formatted" {
		s.changed++
	}
	s.violations += len(res.Violations)
	s.parseErrs += len(res.ParseErrors)
}

func sha256Hex(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

func projectRuleConfigs(cfg *config.Config) []rule.Config {
	if cfg.Project == nil {
		return []rule.Config{}
	}
	return cfg.Project.Rules
}

// ruleSetHash identifies the active rule configuration for cache
// invalidation: any edit to .styler.yml changes this hash, so every
// cached record from the old configuration misses on the next run.
func ruleSetHash(cfg *config.Config) string {
	data, err := os.ReadFile(cfg.RuleConfigPath)
	if err != nil {
		return sha256Hex(nil)
	}
	return sha256Hex(data)
}

// scanTargets discovers source files under targets using cfg's scanner
// settings.
func scanTargets(cfg *config.Config, targets []string) ([]string, error) {
	s := scanner.New(scanner.Config{
		MaxBytes:       cfg.MaxBytes,
		FollowSymlinks: cfg.FollowSymlinks,
		IncludeGlobs:   cfg.IncludeGlobs,
		ExcludeGlobs:   cfg.ExcludeGlobs,
		NoGitignore:    cfg.NoGitignore,
	})
	return s.ScanTargets(context.Background(), targets)
}

// w is non-nil only for the format subcommand; check never writes.
func processTargets(cfg *config.Config, targets []string, w writer.Writer) (*runSummary, error) {
	files, err := scanTargets(cfg, targets)
	if err != nil {
		return nil, err
	}

	cache, err := store.Open(cfg.CachePath)
	if err != nil {
		return nil, err
	}
	defer cache.Close()

	engine := rule.NewEngine() // no concrete formatting rules ship in this repo; see DESIGN.md
	configs := projectRuleConfigs(cfg)
	rsHash := ruleSetHash(cfg)

	summary := &runSummary{}

	numWorkers := cfg.Workers
	if numWorkers < 1 {
		numWorkers = runtime.NumCPU()
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				res := processFile(path, cfg, engine, configs, cache, rsHash, w)
				summary.record(res)
				report.PrintResult(res, cfg.Verbose, cfg.JSONOutput, cfg.ShowDiff, cfg.DiffContext)
			}
		}()
	}
	for _, f := range files {
		jobs <- f
	}
	close(jobs)
	wg.Wait()

	return summary, nil
}

func processFile(path string, cfg *config.Config, engine *rule.Engine, configs []rule.Config, cache *store.Store, rsHash string, w writer.Writer) report.FileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return report.FileResult{Path: path, Outcome: "error", Error: err.Error()}
	}

	srcHash := sha256Hex(data)
	if rec, found, lookupErr := cache.Lookup(srcHash, rsHash); lookupErr == nil && found && rec.FormattedHash == srcHash {
		metrics.IncFilesProcessed("cached")
		return report.FileResult{Path: path, Outcome: "unchanged", Original: string(data), Formatted: string(data)}
	}

	outcome, err := pipeline.Process(string(data), pipeline.Options{
		Version:  cfg.LanguageVersion,
		Deadline: cfg.Deadline,
		Engine:   engine,
		Configs:  configs,
	})
	if err != nil {
		metrics.IncFilesProcessed("error")
		return report.FileResult{Path: path, Outcome: "error", Error: err.Error(), ParseErrors: outcome.ParseErrors}
	}

	formattedHash := sha256Hex([]byte(outcome.Formatted))
	_ = cache.Save(store.RunRecord{
		SourceHash:      srcHash,
		RuleSetHash:     rsHash,
		LanguageVersion: cfg.LanguageVersion,
		FormattedHash:   formattedHash,
		Diagnostics:     store.NewDiagnostics(store.ViolationsToDiagnostics(outcome.Violations)),
	})

	outcomeName := "unchanged"
	if outcome.Changed {
		outcomeName = "formatted"
	}
	metrics.IncFilesProcessed(outcomeName)

	if outcome.Changed && w != nil {
		info, statErr := os.Stat(path)
		perm := os.FileMode(0o644)
		if statErr == nil {
			perm = info.Mode()
		}
		if err := w.WriteFile(path, []byte(outcome.Formatted), perm); err != nil {
			return report.FileResult{Path: path, Outcome: "error", Error: err.Error(), Violations: outcome.Violations, ParseErrors: outcome.ParseErrors}
		}
	}

	return report.FileResult{
		Path:        path,
		Outcome:     outcomeName,
		Violations:  outcome.Violations,
		ParseErrors: outcome.ParseErrors,
		Original:    outcome.Original,
		Formatted:   outcome.Formatted,
	}
}
