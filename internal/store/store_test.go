package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/styler/internal/rule"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreLookupMissReturnsFalse(t *testing.T) {
	s := openTestStore(t)
	rec, found, err := s.Lookup("deadbeef", "cafebabe")
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, rec)
}

func TestStoreSaveThenLookupRoundTrips(t *testing.T) {
	s := openTestStore(t)

	rec := RunRecord{
		SourceHash:      "deadbeef",
		RuleSetHash:     "cafebabe",
		LanguageVersion: 17,
		FormattedHash:   "f00dface",
		Diagnostics: NewDiagnostics([]Diagnostic{
			{RuleID: "import-organizer", Severity: 5, Start: 0, End: 10, Message: "imports not sorted"},
		}),
	}
	require.NoError(t, s.Save(rec))

	got, found, err := s.Lookup("deadbeef", "cafebabe")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "f00dface", got.FormattedHash)
	require.Equal(t, 17, got.LanguageVersion)

	diags := got.Diagnostics.Data
	require.Len(t, diags, 1)
	require.Equal(t, "import-organizer", diags[0].RuleID)
}

func TestStoreSaveUpsertsOnConflict(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save(RunRecord{SourceHash: "h1", RuleSetHash: "r1", FormattedHash: "first"}))
	require.NoError(t, s.Save(RunRecord{SourceHash: "h1", RuleSetHash: "r1", FormattedHash: "second"}))

	got, found, err := s.Lookup("h1", "r1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "second", got.FormattedHash)
}

func TestViolationsToDiagnosticsProjectsFields(t *testing.T) {
	violations := []rule.Violation{
		{RuleID: "import-organizer", Severity: rule.Warning, Range: rule.Range{Start: 1, End: 5}, Message: "m"},
	}
	diags := ViolationsToDiagnostics(violations)
	require.Len(t, diags, 1)
	require.Equal(t, "import-organizer", diags[0].RuleID)
	require.Equal(t, int(rule.Warning), diags[0].Severity)
}
