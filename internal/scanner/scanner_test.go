package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestScannerBasic(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tempDir)

	testFiles := []string{"Main.java", "Utils.java", "README.md"}
	for _, file := range testFiles {
		if err := os.WriteFile(file, []byte("class Main {}"), 0o644); err != nil {
			t.Fatalf("Failed to create test file %s: %v", file, err)
		}
	}

	s := New(Config{})

	files, err := s.ScanTargets(context.Background(), []string{"."})
	if err != nil {
		t.Errorf("ScanTargets() error = %v", err)
	}

	expectedCount := 2
	if len(files) != expectedCount {
		t.Errorf("Expected %d files, got %d", expectedCount, len(files))
	}
}

func TestScannerWithGitignore(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tempDir)

	gitignoreContent := "*.tmp\nIgnored.java\n"
	if err := os.WriteFile(".gitignore", []byte(gitignoreContent), 0o644); err != nil {
		t.Fatalf("Failed to create .gitignore: %v", err)
	}

	testFiles := []string{"Main.java", "Ignored.java", "temp.tmp"}
	for _, file := range testFiles {
		if err := os.WriteFile(file, []byte("class Main {}"), 0o644); err != nil {
			t.Fatalf("Failed to create test file %s: %v", file, err)
		}
	}

	s := New(Config{NoGitignore: false})

	files, err := s.ScanTargets(context.Background(), []string{"."})
	if err != nil {
		t.Errorf("ScanTargets() error = %v", err)
	}

	expectedCount := 1
	if len(files) != expectedCount {
		t.Errorf("Expected %d files, got %d", expectedCount, len(files))
	}
	if len(files) > 0 && filepath.Base(files[0]) != "Main.java" {
		t.Errorf("Expected Main.java, got %s", filepath.Base(files[0]))
	}
}

func TestScannerNoGitignore(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tempDir)

	gitignoreContent := "*.tmp\nIgnored.java\n"
	if err := os.WriteFile(".gitignore", []byte(gitignoreContent), 0o644); err != nil {
		t.Fatalf("Failed to create .gitignore: %v", err)
	}

	testFiles := []string{"Main.java", "Ignored.java"}
	for _, file := range testFiles {
		if err := os.WriteFile(file, []byte("class Main {}"), 0o644); err != nil {
			t.Fatalf("Failed to create test file %s: %v", file, err)
		}
	}

	s := New(Config{NoGitignore: true})

	files, err := s.ScanTargets(context.Background(), []string{"."})
	if err != nil {
		t.Errorf("ScanTargets() error = %v", err)
	}

	expectedCount := 2
	if len(files) != expectedCount {
		t.Errorf("Expected %d files, got %d", expectedCount, len(files))
	}
}

func TestScannerIncludeExclude(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tempDir)

	testFiles := []string{"Main.java", "MainTest.java", "Utils.java"}
	for _, file := range testFiles {
		if err := os.WriteFile(file, []byte("class Main {}"), 0o644); err != nil {
			t.Fatalf("Failed to create test file %s: %v", file, err)
		}
	}

	s := New(Config{IncludeGlobs: []string{"**/*Test.java"}})

	files, err := s.ScanTargets(context.Background(), []string{"."})
	if err != nil {
		t.Errorf("ScanTargets() error = %v", err)
	}

	expectedCount := 1
	if len(files) != expectedCount {
		t.Errorf("Expected %d files, got %d", expectedCount, len(files))
	}
	if len(files) > 0 && filepath.Base(files[0]) != "MainTest.java" {
		t.Errorf("Expected MainTest.java, got %s", filepath.Base(files[0]))
	}
}

func TestScannerMaxBytes(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tempDir)

	smallContent := "class Main {}"
	largeContent := make([]byte, 1000)
	for i := range largeContent {
		largeContent[i] = 'a'
	}

	if err := os.WriteFile("Small.java", []byte(smallContent), 0o644); err != nil {
		t.Fatalf("Failed to create small file: %v", err)
	}
	if err := os.WriteFile("Large.java", largeContent, 0o644); err != nil {
		t.Fatalf("Failed to create large file: %v", err)
	}

	s := New(Config{MaxBytes: 100})

	files, err := s.ScanTargets(context.Background(), []string{"."})
	if err != nil {
		t.Errorf("ScanTargets() error = %v", err)
	}

	expectedCount := 1
	if len(files) != expectedCount {
		t.Errorf("Expected %d files, got %d", expectedCount, len(files))
	}
	if len(files) > 0 && filepath.Base(files[0]) != "Small.java" {
		t.Errorf("Expected Small.java, got %s", filepath.Base(files[0]))
	}
}

func TestScannerDirectorySkipping(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tempDir)

	skipDirs := []string{".git", "target", "build"}
	for _, dir := range skipDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
		filePath := filepath.Join(dir, "Test.java")
		if err := os.WriteFile(filePath, []byte("class Test {}"), 0o644); err != nil {
			t.Fatalf("Failed to create file in %s: %v", dir, err)
		}
	}

	if err := os.WriteFile("Main.java", []byte("class Main {}"), 0o644); err != nil {
		t.Fatalf("Failed to create Main.java: %v", err)
	}

	s := New(Config{})

	files, err := s.ScanTargets(context.Background(), []string{"."})
	if err != nil {
		t.Errorf("ScanTargets() error = %v", err)
	}

	expectedCount := 1
	if len(files) != expectedCount {
		t.Errorf("Expected %d files, got %d", expectedCount, len(files))
	}
	if len(files) > 0 && filepath.Base(files[0]) != "Main.java" {
		t.Errorf("Expected Main.java, got %s", filepath.Base(files[0]))
	}
}
