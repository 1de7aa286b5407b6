package writer

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/oxhq/styler/internal/diffutil"
)

// InteractiveWriter shows a diff of each proposed change and asks for
// confirmation before writing it to disk.
type InteractiveWriter struct {
	diskWriter *DiskWriter
	confirmed  []string
	rejected   []string
}

// NewInteractiveWriter creates a writer that prompts before each write.
func NewInteractiveWriter() *InteractiveWriter {
	return &InteractiveWriter{
		diskWriter: NewDiskWriter(),
		confirmed:  make([]string, 0),
		rejected:   make([]string, 0),
	}
}

// WriteFile shows a diff and asks for user confirmation before writing.
func (w *InteractiveWriter) WriteFile(path string, content []byte, perm os.FileMode) error {
	var originalContent []byte
	if stat, err := os.Stat(path); err == nil && stat.Mode().IsRegular() {
		originalContent, _ = os.ReadFile(path)
	}

	diff := diffutil.Unified(string(originalContent), string(content), path, 3, true)
	if diff == "" {
		return nil
	}

	fmt.Print(diff)
	fmt.Printf("\nApply changes to %s? [y/N/q]: ", path)

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading user input: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))

	switch response {
	case "y", "yes":
		w.confirmed = append(w.confirmed, path)
		return w.diskWriter.WriteFile(path, content, perm)
	case "q", "quit":
		return fmt.Errorf("user cancelled operation")
	default:
		w.rejected = append(w.rejected, path)
		return nil
	}
}

// Summary reports what the user confirmed and rejected.
func (w *InteractiveWriter) Summary() string {
	var sb strings.Builder

	if len(w.confirmed) > 0 {
		sb.WriteString(fmt.Sprintf("Applied changes to %d file(s):\n", len(w.confirmed)))
		for _, path := range w.confirmed {
			sb.WriteString("  " + path + "\n")
		}
	}
	if len(w.rejected) > 0 {
		sb.WriteString(fmt.Sprintf("Rejected changes to %d file(s):\n", len(w.rejected)))
		for _, path := range w.rejected {
			sb.WriteString("  " + path + "\n")
		}
	}
	if len(w.confirmed) == 0 && len(w.rejected) == 0 {
		return "No changes were proposed."
	}
	return sb.String()
}
