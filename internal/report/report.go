// Package report prints per-file outcomes and run summaries for
// cmd/styler: human-readable and JSON result lines, a fatal-error
// formatter, and a final write-summary line, built on rule.Violation
// and diag.ParseError rather than any CLI-layer type.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/oxhq/styler/internal/diag"
	"github.com/oxhq/styler/internal/diffutil"
	"github.com/oxhq/styler/internal/rule"
	"github.com/oxhq/styler/internal/writer"
)

// FileResult is one scanned file's outcome: either a parse failure, or a
// set of rule violations (possibly empty) plus the content before and
// after edits were applied.
type FileResult struct {
	Path        string             `json:"path"`
	Outcome     string             `json:"outcome"` // "formatted", "unchanged", "error"
	ParseErrors []diag.ParseError  `json:"parseErrors,omitempty"`
	Violations  []rule.Violation   `json:"violations,omitempty"`
	Error       string             `json:"error,omitempty"`
	Original    string             `json:"-"`
	Formatted   string             `json:"-"`
}

// PrintResult reports one file's outcome to stdout/stderr in human or
// JSON form, mirroring PrintResultCLI's verbose/diff/json branches.
func PrintResult(res FileResult, verbose, jsonOutput, showDiff bool, diffContext int) {
	if jsonOutput {
		b, err := json.Marshal(res)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error converting result to JSON: %v\n", err)
			return
		}
		fmt.Println(string(b))
		return
	}

	if res.Outcome == "error" {
		fmt.Fprintf(os.Stderr, "✗ %s: %s\n", res.Path, res.Error)
		return
	}

	if verbose {
		if len(res.Violations) > 0 {
			fmt.Printf("✓ %s — %d violation(s)\n", res.Path, len(res.Violations))
			for _, v := range res.Violations {
				fmt.Printf("  [%s] %s: %s (%d-%d)\n", v.Severity, v.RuleID, v.Message, v.Range.Start, v.Range.End)
			}
		} else {
			fmt.Printf("✓ %s — no violations\n", res.Path)
		}
	}

	if showDiff && res.Outcome == "formatted" {
		diff := diffutil.Unified(res.Original, res.Formatted, res.Path, diffContext, true)
		fmt.Print(diff)
	}
}

// PrintFatal reports a run-level (not per-file) error.
func PrintFatal(err error, jsonOutput bool) {
	if jsonOutput {
		b, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Println(string(b))
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// PrintSummary prints the writer's end-of-run summary (staged changes
// awaiting commit, interactive confirm/reject counts), unless running in
// JSON mode.
func PrintSummary(w writer.Writer, jsonOutput bool) {
	if jsonOutput || w == nil {
		return
	}
	summary := w.Summary()
	if summary != "" {
		fmt.Fprintf(os.Stderr, "\n%s\n", summary)
	}
}
