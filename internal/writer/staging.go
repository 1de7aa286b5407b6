package writer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oxhq/styler/internal/diffutil"
)

// StagedChange records one formatted file's before/after content and
// hashes, persisted as JSON under the staging directory so a later
// `styler apply` (CommitWriter) can detect whether the file changed on
// disk in the meantime.
type StagedChange struct {
	Path            string    `json:"path"`
	OriginalContent string    `json:"original_content"`
	FormattedContent string   `json:"formatted_content"`
	OriginalSHA256  string    `json:"original_sha256"`
	FormattedSHA256 string    `json:"formatted_sha256"`
	SizeDelta       int64     `json:"size_delta"`
	Timestamp       time.Time `json:"timestamp"`
}

func sha256Hex(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// StagingWriter records formatted output under stagingDir without
// touching the target file, so a reviewer can inspect a diff before
// committing.
type StagingWriter struct {
	stagingDir string
	mu         sync.Mutex
	changes    []StagedChange
}

// NewStagingWriter creates a staging writer rooted at stagingDir (the
// project's .styler/ directory by default).
func NewStagingWriter(stagingDir string) *StagingWriter {
	return &StagingWriter{
		stagingDir: stagingDir,
		changes:    make([]StagedChange, 0, 8),
	}
}

// WriteFile records content as the staged replacement for path; it never
// modifies path itself.
func (w *StagingWriter) WriteFile(path string, content []byte, _ os.FileMode) error {
	originalContent, _ := os.ReadFile(path)

	change := StagedChange{
		Path:             path,
		OriginalContent:  string(originalContent),
		FormattedContent: string(content),
		OriginalSHA256:   sha256Hex(originalContent),
		FormattedSHA256:  sha256Hex(content),
		SizeDelta:        int64(len(content)) - int64(len(originalContent)),
		Timestamp:        time.Now(),
	}

	w.mu.Lock()
	w.changes = append(w.changes, change)
	w.mu.Unlock()

	if err := os.MkdirAll(w.stagingDir, 0o755); err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}

	changeFile := filepath.Join(w.stagingDir, safeFileName(path))
	data, err := json.MarshalIndent(change, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal staged change: %w", err)
	}
	return os.WriteFile(changeFile, data, 0o644)
}

// Summary renders a unified diff preview of every staged change.
func (w *StagingWriter) Summary() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.changes) == 0 {
		return "No changes staged."
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Staged %d change(s) in %s/:\n", len(w.changes), w.stagingDir))
	for _, c := range w.changes {
		diff := diffutil.Unified(c.OriginalContent, c.FormattedContent, c.Path, 3, false)
		if diff != "" {
			sb.WriteString("\n" + diff)
		}
	}
	sb.WriteString("\nRun 'styler apply' to apply these changes.\n")
	return sb.String()
}

func safeFileName(path string) string {
	rep := strings.NewReplacer("/", "_", "\\", "_", ":", "_")
	return fmt.Sprintf("change_%s.json", rep.Replace(path))
}

// CommitWriter applies previously staged changes, refusing any file that
// changed on disk since it was staged (sha256 comparison against
// OriginalSHA256).
type CommitWriter struct {
	stagingDir   string
	appliedFiles []string
	skippedFiles []string
}

// NewCommitWriter creates a writer that applies staged changes found
// under stagingDir.
func NewCommitWriter(stagingDir string) *CommitWriter {
	return &CommitWriter{stagingDir: stagingDir}
}

// WriteFile is unsupported on CommitWriter; use ApplyStagedChanges.
func (*CommitWriter) WriteFile(string, []byte, os.FileMode) error {
	return errors.New("writer: CommitWriter does not support WriteFile; call ApplyStagedChanges")
}

// ApplyStagedChanges replays every staged change file in stagingDir,
// aborting on the first conflict, and removes stagingDir once every
// change has applied cleanly.
func (w *CommitWriter) ApplyStagedChanges() error {
	entries, err := os.ReadDir(w.stagingDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no staged changes (no %s directory)", w.stagingDir)
		}
		return err
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := w.applyChangeFile(filepath.Join(w.stagingDir, e.Name())); err != nil {
			return err
		}
	}
	return os.RemoveAll(w.stagingDir)
}

func (w *CommitWriter) applyChangeFile(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	var ch StagedChange
	if err := json.Unmarshal(data, &ch); err != nil {
		return err
	}

	currentContent, _ := os.ReadFile(ch.Path)
	if sha256Hex(currentContent) != ch.OriginalSHA256 {
		w.skippedFiles = append(w.skippedFiles, ch.Path)
		return fmt.Errorf("file %s changed since staging; aborting commit", ch.Path)
	}

	if err := writeFileAtomic(ch.Path, []byte(ch.FormattedContent), 0o644); err != nil {
		return err
	}
	w.appliedFiles = append(w.appliedFiles, ch.Path)
	return nil
}

// Summary lists applied and skipped files.
func (w *CommitWriter) Summary() string {
	var sb strings.Builder
	if len(w.appliedFiles) > 0 {
		sb.WriteString(fmt.Sprintf("Applied %d file(s):\n", len(w.appliedFiles)))
		for _, p := range w.appliedFiles {
			sb.WriteString("  " + p + "\n")
		}
	}
	if len(w.skippedFiles) > 0 {
		sb.WriteString(fmt.Sprintf("Skipped %d file(s) due to conflicts:\n", len(w.skippedFiles)))
		for _, p := range w.skippedFiles {
			sb.WriteString("  " + p + "\n")
		}
	}
	if sb.Len() == 0 {
		return "No changes were applied."
	}
	return sb.String()
}
