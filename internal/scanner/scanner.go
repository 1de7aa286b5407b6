// Package scanner discovers source files to format or check: a
// gitignore-aware recursive directory walk filtered by extension and
// by include/exclude glob patterns.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// SourceExtensions lists the file extensions Styler treats as source
// files of the target language.
var SourceExtensions = []string{"java"}

// Scanner handles recursive directory traversal with filtering.
type Scanner struct {
	maxBytes       int64
	followSymlinks bool
	includeGlobs   []string
	excludeGlobs   []string
	noGitignore    bool
	extensions     []string
	gitignore      *ignore.GitIgnore
}

// Config holds scanner configuration options.
type Config struct {
	MaxBytes       int64
	FollowSymlinks bool
	IncludeGlobs   []string
	ExcludeGlobs   []string
	NoGitignore    bool
	Extensions     []string // defaults to SourceExtensions when empty
}

// New creates a new scanner with the given configuration.
func New(cfg Config) *Scanner {
	extensions := cfg.Extensions
	if len(extensions) == 0 {
		extensions = SourceExtensions
	}
	s := &Scanner{
		maxBytes:       cfg.MaxBytes,
		followSymlinks: cfg.FollowSymlinks,
		includeGlobs:   cfg.IncludeGlobs,
		excludeGlobs:   cfg.ExcludeGlobs,
		noGitignore:    cfg.NoGitignore,
		extensions:     extensions,
	}

	if !cfg.NoGitignore {
		s.loadGitignore()
	}

	return s
}

// loadGitignore loads .gitignore patterns from the current directory and
// its ancestors, closer files taking precedence over root ones.
func (s *Scanner) loadGitignore() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	var gitignoreFiles []string
	dir := cwd
	for {
		gitignorePath := filepath.Join(dir, ".gitignore")
		if _, err := os.Stat(gitignorePath); err == nil {
			gitignoreFiles = append(gitignoreFiles, gitignorePath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if len(gitignoreFiles) == 0 {
		return
	}

	slices.Reverse(gitignoreFiles)

	if len(gitignoreFiles) == 1 {
		if gi, err := ignore.CompileIgnoreFile(gitignoreFiles[0]); err == nil {
			s.gitignore = gi
		}
		return
	}
	var closerLines []string
	for _, f := range gitignoreFiles[1:] {
		data, err := os.ReadFile(f)
		if err != nil {
			continue
		}
		closerLines = append(closerLines, strings.Split(string(data), "\n")...)
	}
	if gi, err := ignore.CompileIgnoreFileAndLines(gitignoreFiles[0], closerLines...); err == nil {
		s.gitignore = gi
	}
}

// ScanTargets processes a list of file and directory targets, returning
// the deduplicated list of files to format or check.
func (s *Scanner) ScanTargets(ctx context.Context, targets []string) ([]string, error) {
	if len(targets) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		targets = []string{cwd}
	}

	var allFiles []string
	for _, target := range targets {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		files, err := s.scanTarget(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("scanning target %s: %w", target, err)
		}
		allFiles = append(allFiles, files...)
	}

	return s.deduplicateFiles(allFiles), nil
}

func (s *Scanner) scanTarget(ctx context.Context, target string) ([]string, error) {
	info, err := os.Lstat(target)
	if err != nil {
		return nil, fmt.Errorf("accessing target %s: %w", target, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if !s.followSymlinks {
			return nil, nil
		}
		resolved, err := filepath.EvalSymlinks(target)
		if err != nil {
			return nil, fmt.Errorf("resolving symlink %s: %w", target, err)
		}
		return s.scanTarget(ctx, resolved)
	}

	if info.Mode().IsRegular() {
		if s.shouldProcessFile(target, info) {
			return []string{target}, nil
		}
		return nil, nil
	}

	if info.IsDir() {
		return s.scanDirectory(ctx, target)
	}

	return nil, nil
}

func (s *Scanner) scanDirectory(ctx context.Context, dir string) ([]string, error) {
	var files []string

	err := fs.WalkDir(os.DirFS(dir), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fullPath := filepath.Join(dir, path)

		if d.IsDir() {
			if s.shouldSkipDirectory(path) {
				return fs.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return fmt.Errorf("getting file info for %s: %w", fullPath, err)
			}
			if s.shouldProcessFile(fullPath, info) {
				files = append(files, fullPath)
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", dir, err)
	}

	return files, nil
}

func (s *Scanner) shouldProcessFile(path string, info os.FileInfo) bool {
	if s.gitignore != nil {
		if relPath, err := filepath.Rel(".", path); err == nil && s.gitignore.MatchesPath(relPath) {
			return false
		}
	}

	if s.maxBytes > 0 && info.Size() > s.maxBytes {
		return false
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if !slices.Contains(s.extensions, ext) {
		return false
	}

	if len(s.includeGlobs) > 0 {
		matched := false
		for _, pattern := range s.includeGlobs {
			if ok, _ := doublestar.Match(pattern, path); ok {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, pattern := range s.excludeGlobs {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return false
		}
	}

	return true
}

func (s *Scanner) shouldSkipDirectory(path string) bool {
	if s.gitignore != nil {
		if relPath, err := filepath.Rel(".", path); err == nil && s.gitignore.MatchesPath(relPath) {
			return true
		}
	}

	dirname := filepath.Base(path)

	skipDirs := []string{".git", "target", "build", "out", ".styler"}
	if slices.Contains(skipDirs, dirname) {
		return true
	}

	if strings.HasPrefix(dirname, ".") && dirname != "." {
		return true
	}

	return false
}

func (s *Scanner) deduplicateFiles(files []string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, file := range files {
		if !seen[file] {
			seen[file] = true
			result = append(result, file)
		}
	}

	return result
}
