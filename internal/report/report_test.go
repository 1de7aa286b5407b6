package report

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxhq/styler/internal/rule"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	assert.NoError(t, err)
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestPrintResultJSONEmitsOutcome(t *testing.T) {
	res := FileResult{Path: "Main.java", Outcome: "formatted"}
	out := captureStdout(t, func() { PrintResult(res, false, true, false, 3) })
	assert.Contains(t, out, `"outcome":"formatted"`)
}

func TestPrintResultVerboseListsViolations(t *testing.T) {
	res := FileResult{
		Path:       "Main.java",
		Outcome:    "formatted",
		Violations: []rule.Violation{{RuleID: "import-organizer", Severity: rule.Warning, Range: rule.Range{Start: 0, End: 5}, Message: "unsorted"}},
	}
	out := captureStdout(t, func() { PrintResult(res, true, false, false, 3) })
	assert.Contains(t, out, "1 violation(s)")
	assert.Contains(t, out, "unsorted")
}

func TestPrintResultVerboseNoViolations(t *testing.T) {
	res := FileResult{Path: "Main.java", Outcome: "unchanged"}
	out := captureStdout(t, func() { PrintResult(res, true, false, false, 3) })
	assert.Contains(t, out, "no violations")
}
