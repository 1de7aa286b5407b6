// Package writer applies formatted output to disk, either staged under
// a project-local directory for review, written directly, or confirmed
// interactively per file. Staged writes use a sha256 of the original
// content to detect conflicting edits made before a commit.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer abstracts how formatted content reaches disk: staged for
// review, or written immediately.
type Writer interface {
	WriteFile(path string, content []byte, perm os.FileMode) error
	Summary() string
}

// DiskWriter writes formatted content directly to its target path
// (--commit mode).
type DiskWriter struct {
	writtenFiles []string
}

// NewDiskWriter creates a writer that commits changes straight to disk.
func NewDiskWriter() *DiskWriter {
	return &DiskWriter{writtenFiles: make([]string, 0)}
}

// WriteFile atomically overwrites path with content.
func (w *DiskWriter) WriteFile(path string, content []byte, perm os.FileMode) error {
	if err := writeFileAtomic(path, content, perm); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	w.writtenFiles = append(w.writtenFiles, path)
	return nil
}

// Summary lists the files written.
func (w *DiskWriter) Summary() string {
	if len(w.writtenFiles) == 0 {
		return "No files were written."
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Formatted %d file(s):\n", len(w.writtenFiles)))
	for _, path := range w.writtenFiles {
		sb.WriteString("  " + path + "\n")
	}
	return sb.String()
}

// writeFileAtomic writes data to a temp file in path's directory, then
// renames it into place, so a crash mid-write never leaves path
// truncated or half-written.
func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()
	defer func() { _ = tmp.Close() }()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
