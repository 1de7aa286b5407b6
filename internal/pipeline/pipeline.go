// Package pipeline wires one source file through lex/parse/convert,
// internal/rule.Engine, and back into formatted text: take the file's
// source text, run its configured rules, apply the resulting edits, and report
// whether anything changed.
package pipeline

import (
	"time"

	"github.com/oxhq/styler/internal/convert"
	"github.com/oxhq/styler/internal/diag"
	"github.com/oxhq/styler/internal/metrics"
	"github.com/oxhq/styler/internal/parser"
	"github.com/oxhq/styler/internal/rule"
)

// Outcome is one file's result of running through the pipeline.
type Outcome struct {
	Original    string
	Formatted   string
	ParseErrors []diag.ParseError
	Violations  []rule.Violation
	Changed     bool
}

// Options configures a single Process call.
type Options struct {
	Version  int
	Deadline time.Duration
	Engine   *rule.Engine
	Configs  []rule.Config
}

// Process parses src at the configured language version, runs the
// engine's rules over the converted tree, and applies any edits the
// rules proposed, returning the rewritten source. A parse that produced
// errors still returns those errors in Outcome.ParseErrors rather than
// failing Process outright — Styler reports what the parser was able to
// recover.
func Process(src string, opts Options) (Outcome, error) {
	start := time.Now()

	var parserOpts []parser.Option
	if opts.Deadline > 0 {
		parserOpts = append(parserOpts, parser.WithDeadline(time.Now().Add(opts.Deadline)))
	}

	p, err := parser.New(src, opts.Version, parserOpts...)
	if err != nil {
		return Outcome{}, err
	}

	result, err := p.Parse()
	if err != nil {
		return Outcome{}, err
	}
	metrics.ObserveParseDuration(opts.Version, time.Since(start).Seconds())

	tree, err := convert.Convert(src, opts.Version, result.Tree, result.Root, result.Trivia)
	if err != nil {
		return Outcome{Original: src, ParseErrors: result.Errors}, err
	}

	engine := opts.Engine
	if engine == nil {
		engine = rule.NewEngine()
	}
	configs := opts.Configs
	if configs == nil {
		configs = []rule.Config{}
	}

	analyzed, err := engine.Analyze(tree, configs)
	if err != nil {
		return Outcome{Original: src, ParseErrors: result.Errors}, err
	}

	var violations []rule.Violation
	for _, r := range analyzed {
		violations = append(violations, r.Violations...)
		if r.Err != nil {
			continue
		}
		for _, v := range r.Violations {
			metrics.IncViolations(v.RuleID, v.Severity.String())
		}
	}

	formatted, err := rule.ApplyEdits(src, violations)
	if err != nil {
		return Outcome{Original: src, ParseErrors: result.Errors, Violations: violations}, err
	}

	return Outcome{
		Original:    src,
		Formatted:   formatted,
		ParseErrors: result.Errors,
		Violations:  violations,
		Changed:     formatted != src,
	}, nil
}
