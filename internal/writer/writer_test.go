package writer

import (
	"os"
	"testing"
	"time"
)

func TestDiskWriter(t *testing.T) {
	tempDir := t.TempDir()
	testFile := tempDir + "/test.txt"

	w := NewDiskWriter()
	if err := w.WriteFile(testFile, []byte("formatted"), 0o644); err != nil {
		t.Errorf("DiskWriter.WriteFile() error = %v", err)
	}

	content, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}
	if string(content) != "formatted" {
		t.Errorf("file content = %q, want %q", string(content), "formatted")
	}

	if summary := w.Summary(); summary == "" {
		t.Error("DiskWriter.Summary() should return non-empty string")
	}
}

func TestStagingWriter(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tempDir)

	testFile := "Test.java"
	originalContent := "class Test{}"
	if err := os.WriteFile(testFile, []byte(originalContent), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	w := NewStagingWriter(".styler")
	formattedContent := "class Test {}"

	if err := w.WriteFile(testFile, []byte(formattedContent), 0o644); err != nil {
		t.Errorf("StagingWriter.WriteFile() error = %v", err)
	}

	if _, err := os.Stat(".styler"); os.IsNotExist(err) {
		t.Error("Staging directory should be created")
	}

	content, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read test file: %v", err)
	}
	if string(content) != originalContent {
		t.Error("Original file should not be modified by staging")
	}

	if summary := w.Summary(); summary == "" {
		t.Error("StagingWriter.Summary() should return non-empty string")
	}
}

func TestCommitWriter(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tempDir)

	testFile := "Test.java"
	originalContent := "class Test{}"
	formattedContent := "class Test {}"

	if err := os.WriteFile(testFile, []byte(originalContent), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	stagingWriter := NewStagingWriter(".styler")
	if err := stagingWriter.WriteFile(testFile, []byte(formattedContent), 0o644); err != nil {
		t.Fatalf("Failed to stage change: %v", err)
	}

	commitWriter := NewCommitWriter(".styler")
	if err := commitWriter.ApplyStagedChanges(); err != nil {
		t.Errorf("CommitWriter.ApplyStagedChanges() error = %v", err)
	}

	content, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read test file: %v", err)
	}
	if string(content) != formattedContent {
		t.Errorf("file content = %q, want %q", string(content), formattedContent)
	}

	if _, err := os.Stat(".styler"); !os.IsNotExist(err) {
		t.Error("Staging directory should be cleaned up after commit")
	}

	if summary := commitWriter.Summary(); summary == "" {
		t.Error("CommitWriter.Summary() should return non-empty string")
	}
}

func TestCommitWriterRejectsConflictingChange(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tempDir)

	testFile := "Test.java"
	if err := os.WriteFile(testFile, []byte("class Test{}"), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	stagingWriter := NewStagingWriter(".styler")
	if err := stagingWriter.WriteFile(testFile, []byte("class Test {}"), 0o644); err != nil {
		t.Fatalf("Failed to stage change: %v", err)
	}

	// Mutate the file on disk after staging but before commit.
	if err := os.WriteFile(testFile, []byte("class Test { /* edited */ }"), 0o644); err != nil {
		t.Fatalf("Failed to mutate test file: %v", err)
	}

	commitWriter := NewCommitWriter(".styler")
	if err := commitWriter.ApplyStagedChanges(); err == nil {
		t.Error("ApplyStagedChanges() should error when the file changed since staging")
	}
}

func TestCommitWriterNoStagedChanges(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tempDir)

	commitWriter := NewCommitWriter(".styler")
	if err := commitWriter.ApplyStagedChanges(); err == nil {
		t.Error("CommitWriter.ApplyStagedChanges() should error when no staged changes")
	}
}

func TestStagedChangeFieldsPopulated(t *testing.T) {
	change := StagedChange{
		Path:             "Test.java",
		OriginalContent:  "original",
		FormattedContent: "formatted",
		OriginalSHA256:   "abc123",
		FormattedSHA256:  "def456",
		Timestamp:        time.Now(),
	}

	if change.Path == "" {
		t.Error("Path should not be empty")
	}
	if change.OriginalContent == "" {
		t.Error("OriginalContent should not be empty")
	}
	if change.FormattedContent == "" {
		t.Error("FormattedContent should not be empty")
	}
}
